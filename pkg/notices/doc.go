// Package notices resolves the licenses of a project's libraries and writes
// the third-party notices document.
//
// # Pipeline
//
// A [Generator] resolves libraries one at a time, in input order, and groups
// them by byte-identical license text. Groups come out in the order their
// text was first seen. Libraries without a license are logged once and left
// out of every group.
//
// # Output Format
//
// Each group is written by [Writer.WriteGroup] as:
//
//	License notice for the following libraries:
//	<relative output path, one per line, sorted by package file name>
//	<'=' repeated to the longest of the header and the listed paths>
//	<license text>
//	<blank line>
//
// Lines end with CRLF and the text is UTF-8.
//
// # Usage
//
//	gen, err := notices.NewGenerator(notices.Options{Resolver: r, Open: notices.OpenNupkg})
//	if err != nil {
//	    return err
//	}
//	w, err := notices.NewWriter(f)
//	if err != nil {
//	    return err
//	}
//	summary, err := gen.Generate(ctx, libs, w)
package notices

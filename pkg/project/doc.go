// Package project enumerates the third-party libraries of a .NET project.
//
// It reads the restore output "obj/project.assets.json" that "dotnet restore"
// writes next to the project file. Every runtime asset of every package
// library in the selected target framework becomes one [Library]: the file
// that ships with the application, paired with the .nupkg it came from.
//
// The order of the result is deterministic: target frameworks by name, then
// libraries by key, then assets by path.
package project

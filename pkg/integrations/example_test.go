package integrations_test

import (
	"fmt"
	"net/url"

	"github.com/matzehuels/noticegen/pkg/integrations"
)

func ExampleToRawContentURL() {
	u, _ := url.Parse("https://github.com/JamesNK/Newtonsoft.Json/blob/master/LICENSE.md")
	fmt.Println(integrations.ToRawContentURL(u))
	// Output:
	// https://raw.githubusercontent.com/JamesNK/Newtonsoft.Json/master/LICENSE.md
}

func ExampleNormalizeRepoURL() {
	// Repository URL forms from package metadata are normalized to HTTPS
	fmt.Println(integrations.NormalizeRepoURL("git@github.com:user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("git+https://github.com/user/repo"))
	// Output:
	// https://github.com/user/repo.git
	// https://github.com/user/repo
}

package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String() = %q", String())
	}
	if UserAgent() != "texforge/"+Version {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}

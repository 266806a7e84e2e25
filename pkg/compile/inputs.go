package compile

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/texforge/pkg/cache"
	"github.com/matzehuels/texforge/pkg/latex"
)

// inclusionPattern matches the commands through which a source reads other
// files. The optional bracket group covers \includegraphics[width=...]{...}.
var inclusionPattern = regexp.MustCompile(`\\(input|include|includegraphics|bibliography|addbibresource)\s*(?:\[[^\]]*\])?\{([^}]*)\}`)

// inputExtensions are tried in order when a reference omits its extension.
var inputExtensions = []string{latex.TeXExtension, ".bib", ".pdf", ".png", ".jpg", ".jpeg", ".eps"}

// inputDigests returns one "name=digest" entry per file that source reads,
// resolved against dir and followed through nested .tex inputs. Missing
// files are recorded as such so that creating them later changes the result.
// The entries are sorted so the order of inclusion does not matter.
func inputDigests(dir string, source []byte) []string {
	seen := make(map[string]bool)
	var digests []string

	var walk func(src []byte)
	walk = func(src []byte) {
		for _, ref := range references(src) {
			if seen[ref] {
				continue
			}
			seen[ref] = true

			path, data, ok := readInput(dir, ref)
			if !ok {
				digests = append(digests, ref+"=missing")
				continue
			}
			digests = append(digests, ref+"="+cache.Hash(data))
			if filepath.Ext(path) == latex.TeXExtension {
				walk(data)
			}
		}
	}
	walk(source)

	sort.Strings(digests)
	return digests
}

// references lists the file names named by inclusion commands in src.
// \bibliography takes a comma-separated list.
func references(src []byte) []string {
	var refs []string
	for _, m := range inclusionPattern.FindAllSubmatch(src, -1) {
		for _, name := range strings.Split(string(m[2]), ",") {
			if name = strings.TrimSpace(name); name != "" {
				refs = append(refs, name)
			}
		}
	}
	return refs
}

// readInput resolves ref against dir, trying ref as written first.
func readInput(dir, ref string) (string, []byte, bool) {
	candidates := []string{ref}
	if filepath.Ext(ref) == "" {
		for _, ext := range inputExtensions {
			candidates = append(candidates, ref+ext)
		}
	}
	for _, c := range candidates {
		path := c
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, true
		}
	}
	return "", nil, false
}

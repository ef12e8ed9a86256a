package assets

import "fmt"

// Fragment names.
const (
	HeadHTML = "head.html"
	NeckHTML = "neck.html"
	TailHTML = "tail.html"
	BaseCSS  = "base.css"
)

// Boilerplate holds the fixed fragments for one run. Each is copied
// verbatim into the output.
type Boilerplate struct {
	Head []byte
	Neck []byte
	Tail []byte
	CSS  []byte
}

// LoadBoilerplate reads all four fragments through l.
func LoadBoilerplate(l Loader) (*Boilerplate, error) {
	var b Boilerplate
	for _, item := range []struct {
		name string
		dst  *[]byte
	}{
		{HeadHTML, &b.Head},
		{NeckHTML, &b.Neck},
		{TailHTML, &b.Tail},
		{BaseCSS, &b.CSS},
	} {
		content, err := l.Load(item.name)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", item.name, err)
		}
		*item.dst = content
	}
	return &b, nil
}

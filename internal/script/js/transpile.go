package js

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vovakirdan/turtle/internal/script"
)

// Transpile turns TypeScript source into CommonJS that goja can run.
func Transpile(name string, src []byte) ([]byte, error) {
	res := api.Transform(string(src), api.TransformOptions{
		Loader:     api.LoaderTS,
		Format:     api.FormatCommonJS,
		Target:     api.ES2015,
		Sourcefile: name,
	})
	if len(res.Errors) > 0 {
		lines := make([]string, 0, len(res.Errors))
		for _, m := range res.Errors {
			if m.Location != nil {
				lines = append(lines, fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text))
				continue
			}
			lines = append(lines, m.Text)
		}
		return nil, &script.Error{Engine: engineName, Message: strings.Join(lines, "\n")}
	}
	return res.Code, nil
}

package inline

import (
	"encoding/json"
	"io"
)

func writeJson(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

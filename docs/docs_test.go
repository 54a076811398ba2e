package docs

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

func TestDocMatchesHandlerAnnotations(t *testing.T) {
	src, err := os.ReadFile("../internal/handler/wallet.go")
	require.NoError(t, err)

	want := map[string][]string{}
	for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
		want[m[1]] = append(want[m[1]], strings.ToLower(m[2]))
	}
	require.NotEmpty(t, want)

	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	assert.Equal(t, "CDP Wallet API", doc.Info.Title)

	got := map[string][]string{}
	for path, methods := range doc.Paths {
		for method := range methods {
			got[path] = append(got[path], method)
		}
	}
	assert.Equal(t, want, got)
}

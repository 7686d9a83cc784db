// internal/status/decode_test.go
package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) Snapshot {
	t.Helper()

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	return s
}

func TestSnapshot_NonStringStatusIsUnknown(t *testing.T) {
	t.Parallel()

	s := decode(t, `{"db":1,"query":true,"redis":{"ok": false},"pdf_queue":0,"thumb_queue":0,"uptime":"1s"}`)

	assert.Equal(t, "1", s.DB)
	assert.Equal(t, "true", s.Query)
	assert.Equal(t, `{"ok":false}`, s.Redis)
	assert.Equal(t, IconUnknown, IconFor(s.DB))
	assert.Equal(t, IconUnknown, IconFor(s.Query))
	assert.Equal(t, IconUnknown, IconFor(s.Redis))
}

func TestSnapshot_NullAndMissingStatus(t *testing.T) {
	t.Parallel()

	s := decode(t, `{"db":null,"pdf_queue":1}`)

	assert.Equal(t, "", s.DB)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, IconNone, IconFor(s.DB))
	assert.Equal(t, 1, s.QueuedJobs())
}

func TestSnapshot_LenientCounts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want int
	}{
		{`{"pdf_queue":2.0,"thumb_queue":1}`, 3},
		{`{"pdf_queue":"2","thumb_queue":" 1 "}`, 3},
		{`{"pdf_queue":2.9,"thumb_queue":0}`, 2},
		{`{"pdf_queue":null,"thumb_queue":"lots"}`, 0},
		{`{"pdf_queue":true,"thumb_queue":[1]}`, 0},
		{`{"pdf_queue":1e300,"thumb_queue":0}`, maxCount},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, decode(t, tc.body).QueuedJobs(), tc.body)
	}
}

func TestSnapshot_NonObjectFails(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`[1,2]`, `"up"`, `42`, `{"db":`} {
		var s Snapshot
		assert.Error(t, json.Unmarshal([]byte(body), &s), body)
	}
}

func TestSnapshot_NullLeavesValue(t *testing.T) {
	t.Parallel()

	s := DefaultSnapshot()
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.Equal(t, DefaultSnapshot(), s)
}

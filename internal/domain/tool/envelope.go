package tool

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrPayloadNotObject is returned by Success when the payload is not a JSON object.
var ErrPayloadNotObject = errors.New("tool payload must be a json object")

var okTrue = []byte(`{"ok":true}`)

// Success renders {"ok":true, ...payload}. "ok" is always the first key and cannot
// be overridden by the payload.
func Success(payload any) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal tool payload")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, ErrPayloadNotObject
	}

	out := append([]byte(nil), okTrue...)
	doc.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "ok" {
			return true
		}
		out, err = sjson.SetRawBytes(out, escapePath(key.String()), []byte(value.Raw))
		return err == nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "merge tool payload")
	}
	return out, nil
}

type failureEnvelope struct {
	OK    bool `json:"ok"`
	Error any  `json:"error"`
}

// Failure renders {"ok":false,"error":...} in the requested style.
func Failure(err error, style ErrorStyle) json.RawMessage {
	env := failureEnvelope{Error: errorString(err)}
	if style == ErrorStyleStructured {
		env.Error = DescribeError(err)
	}
	raw, mErr := json.Marshal(env)
	if mErr != nil {
		return json.RawMessage(`{"ok":false,"error":"unexpected: failed to render error"}`)
	}
	return raw
}

// IsOK reports the "ok" flag of an envelope.
func IsOK(envelope json.RawMessage) bool {
	return gjson.GetBytes(envelope, "ok").Bool()
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func escapePath(key string) string {
	return pathEscaper.Replace(key)
}

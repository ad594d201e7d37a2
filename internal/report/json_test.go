package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
		ok    bool
	}{
		{name: "plain", reply: `{"emailText":"hi"}`, want: `{"emailText":"hi"}`, ok: true},
		{name: "json fence", reply: "```json\n{\"emailText\":\"hi\"}\n```", want: `{"emailText":"hi"}`, ok: true},
		{name: "bare fence", reply: "```\n{\"a\":1}\n```", want: `{"a":1}`, ok: true},
		{name: "prose around", reply: "Here you go:\n{\"a\":{\"b\":2}}\nThanks!", want: `{"a":{"b":2}}`, ok: true},
		{name: "braces inside strings", reply: `{"html":"<div>{x}</div>","t":"a \"}\" b"}`, want: `{"html":"<div>{x}</div>","t":"a \"}\" b"}`, ok: true},
		{name: "no json", reply: "sorry, I cannot help", ok: false},
		{name: "unbalanced", reply: `{"a":1`, ok: false},
		{name: "empty", reply: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.reply)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

package llm

import (
	"strings"
	"testing"
)

func TestParseStructuredJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "plain", content: `{"a":"1"}`, want: "1"},
		{name: "fenced", content: "```json\n{\"a\": \"1\"}\n```", want: "1"},
		{name: "prose", content: "Here you go:\n{\"a\": \"1\"}\nThanks!", want: "1"},
		{name: "array", content: `["a"]`, wantErr: true},
		{name: "empty", content: "  ", wantErr: true},
		{name: "garbage", content: "{not json}", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, raw, err := ParseStructuredJSON(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", m)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStructuredJSON: %v", err)
			}
			if m["a"] != tt.want || string(raw) != `{"a":"1"}` {
				t.Errorf("got %v / %s", m, raw)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	got := Stringify(map[string]any{
		"s":    "  text ",
		"n":    float64(12),
		"f":    1.5,
		"null": nil,
		"b":    true,
		"list": []any{"x"},
	})
	want := map[string]string{"s": "text", "n": "12", "f": "1.5", "null": "", "b": "true", "list": `["x"]`}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestBuildEstatePrompt(t *testing.T) {
	p := BuildEstatePrompt([]string{"title", "summary"}, "DOCUMENT BODY")
	if !strings.Contains(p, `"title", "summary"`) {
		t.Errorf("key list missing:\n%s", p)
	}
	if !strings.HasSuffix(strings.TrimSpace(p), "DOCUMENT BODY") {
		t.Errorf("document text should close the prompt:\n%s", p)
	}
	if strings.Contains(p, "{key_list}") || strings.Contains(p, "{document_text}") {
		t.Error("placeholders left in prompt")
	}
	if VisionDatePrompt() == "" {
		t.Error("vision prompt is empty")
	}
}

func TestValidateEstateSchema(t *testing.T) {
	schema, err := CompileSchema("estate", BuildEstateJSONSchema([]string{"title", "summary", "page_count"}))
	if err != nil {
		t.Fatalf("CompileSchema: %v", err)
	}

	if err := schema.Validate([]byte(`{"title":"x","summary":"y","page_count":2}`)); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
	if err := schema.Validate([]byte(`{"title":"x","summary":null,"page_count":"2"}`)); err != nil {
		t.Fatalf("null and string values should pass: %v", err)
	}
	err = schema.Validate([]byte(`{"title":"x","page_count":2}`))
	if err == nil || !strings.Contains(err.Error(), "summary") {
		t.Fatalf("expected missing summary error, got %v", err)
	}
	if err := schema.Validate([]byte(`{"title":{"a":1},"summary":"","page_count":1}`)); err == nil {
		t.Fatal("object value should fail")
	}
}

func TestDataURL(t *testing.T) {
	if got := DataURL("", []byte("hi")); got != "data:image/png;base64,aGk=" {
		t.Errorf("DataURL = %q", got)
	}
}

func TestCompiledSchemaReportsLocations(t *testing.T) {
	s, err := CompileSchema("estate", BuildEstateJSONSchema([]string{"title", "page_count"}))
	if err != nil {
		t.Fatalf("CompileSchema: %v", err)
	}
	err = s.Validate([]byte(`{"title":["a"],"page_count":3}`))
	if err == nil || !strings.Contains(err.Error(), "/title") || !strings.HasPrefix(err.Error(), "estate reply") {
		t.Fatalf("expected error naming /title, got %v", err)
	}
	if err := s.Validate([]byte(`{"title":"x","page_count":3.0}`)); err != nil {
		t.Fatalf("valid reply rejected: %v", err)
	}
}

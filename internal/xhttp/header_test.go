package xhttp

import (
	"net/http"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC 1123",
			value: "Tue, 20 Aug 2024 03:29:59 GMT",
			want:  time.Date(2024, time.August, 20, 3, 29, 59, 0, time.UTC),
		},
		{
			name:  "RFC 850",
			value: "Tuesday, 20-Aug-24 03:29:59 GMT",
			want:  time.Date(2024, time.August, 20, 3, 29, 59, 0, time.UTC),
		},
		{
			name:    "missing",
			value:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			value:   "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := http.Header{}
			if tt.value != "" {
				h.Set(Date, tt.value)
			}
			got, err := ParseDate(h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCommandArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		command string
		want    string
	}{
		{
			name:    "no args",
			text:    "/preview",
			command: "/preview",
			want:    "",
		},
		{
			name:    "single arg",
			text:    "/remove 2",
			command: "/remove",
			want:    "2",
		},
		{
			name:    "multiple args",
			text:    "/move 1 3",
			command: "/move",
			want:    "1 3",
		},
		{
			name:    "args with extra whitespace",
			text:    "/name   my file  ",
			command: "/name",
			want:    "my file",
		},
		{
			name:    "botname suffix stripped",
			text:    "/compress@photo_pdf_bot 75",
			command: "/compress",
			want:    "75",
		},
		{
			name:    "botname suffix without args",
			text:    "/preview@photo_pdf_bot",
			command: "/preview",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, extractCommandArgs(tt.text, tt.command))
		})
	}
}

func TestParseIndexArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    string
		want    int
		wantErr bool
	}{
		{name: "valid", args: "3", want: 3},
		{name: "valid with whitespace", args: "  7 ", want: 7},
		{name: "zero rejected", args: "0", wantErr: true},
		{name: "negative rejected", args: "-1", wantErr: true},
		{name: "empty rejected", args: "", wantErr: true},
		{name: "non-numeric rejected", args: "two", wantErr: true},
		{name: "extra tokens rejected", args: "1 2", wantErr: true},
		{name: "float rejected", args: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseIndexArg(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidArgs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoveArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    string
		want    MoveArgs
		wantErr bool
	}{
		{name: "valid", args: "1 3", want: MoveArgs{From: 1, To: 3}},
		{name: "same position", args: "2 2", want: MoveArgs{From: 2, To: 2}},
		{name: "extra whitespace", args: "  4   1 ", want: MoveArgs{From: 4, To: 1}},
		{name: "missing to", args: "1", wantErr: true},
		{name: "too many tokens", args: "1 2 3", wantErr: true},
		{name: "zero from", args: "0 2", wantErr: true},
		{name: "zero to", args: "2 0", wantErr: true},
		{name: "negative", args: "-1 2", wantErr: true},
		{name: "non-numeric", args: "a b", wantErr: true},
		{name: "empty", args: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseMoveArgs(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidArgs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseCompressArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    string
		want    int
		wantErr bool
	}{
		{name: "valid", args: "75", want: 75},
		{name: "lower bound", args: "1", want: 1},
		{name: "upper bound", args: "95", want: 95},
		// Range is validated by the settings model, not the parser.
		{name: "zero parses", args: "0", want: 0},
		{name: "out of range parses", args: "200", want: 200},
		{name: "negative parses", args: "-5", want: -5},
		{name: "empty rejected", args: "", wantErr: true},
		{name: "non-numeric rejected", args: "max", wantErr: true},
		{name: "extra tokens rejected", args: "75 80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseCompressArg(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidArgs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

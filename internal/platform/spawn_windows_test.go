//go:build windows

package platform

import "testing"

func TestCommandLine(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"explorer", `/select,C:\Users\me\clip.mp4`}, `explorer /select,"C:\Users\me\clip.mp4"`},
		{[]string{"explorer", `/select,C:\My Videos\a b.mp4`}, `explorer /select,"C:\My Videos\a b.mp4"`},
		{[]string{`C:\Program Files\fm.exe`, `D:\clip.mp4`}, `"C:\Program Files\fm.exe" D:\clip.mp4`},
	}
	for _, tt := range tests {
		if got := commandLine(tt.args); got != tt.want {
			t.Errorf("commandLine(%q) = %s, want %s", tt.args, got, tt.want)
		}
	}
}

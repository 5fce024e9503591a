package discovery

import "testing"

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name string
		want kind
	}{
		{"video.m4s", kindVideo},
		{"AUDIO.M4S", kindAudio},
		{"12345-1-100080.m4s", kindVideo},
		{"12345-1-30080.m4s", kindVideo},
		{"12345-1-30216.m4s", kindAudio},
		{"12345-1-30232.m4s", kindAudio},
		{"12345-1-30280.m4s", kindAudio},
		{"12345-1-30250.m4s", kindAudio},
		{"12345-1-30251.m4s", kindAudio},
		{"12345-1-30255.m4s", kindAudio},
		{"stream.m4s", kindUnknown},
		{"1-2.m4s", kindUnknown},
	}
	for _, tt := range tests {
		if got := classifyName(tt.name); got != tt.want {
			t.Errorf("classifyName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

package gopro

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantStill  Still
		wantReason SkipReason
	}{
		{
			name:       "jpg frame",
			in:         "G0010001.JPG",
			wantStill:  Still{Sequence: 1, Ordinal: 1, Format: FormatJPG},
			wantReason: SkipNone,
		},
		{
			name:       "gpr frame",
			in:         "G0010001.GPR",
			wantStill:  Still{Sequence: 1, Ordinal: 1, Format: FormatGPR},
			wantReason: SkipNone,
		},
		{
			name:       "lowercase extension",
			in:         "G0420123.jpg",
			wantStill:  Still{Sequence: 42, Ordinal: 123, Format: FormatJPG},
			wantReason: SkipNone,
		},
		{
			name:       "mixed case extension",
			in:         "G1230456.Gpr",
			wantStill:  Still{Sequence: 123, Ordinal: 456, Format: FormatGPR},
			wantReason: SkipNone,
		},
		{
			name:       "max sequence and ordinal",
			in:         "G9999999.JPG",
			wantStill:  Still{Sequence: 999, Ordinal: 9999, Format: FormatJPG},
			wantReason: SkipNone,
		},
		{
			name:       "zero ordinal",
			in:         "G0070000.JPG",
			wantStill:  Still{Sequence: 7, Ordinal: 0, Format: FormatJPG},
			wantReason: SkipNone,
		},
		{
			name:       "sequence zero",
			in:         "G0000001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "lowercase prefix",
			in:         "g0010001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "wrong prefix",
			in:         "H0010001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "single photo",
			in:         "GOPR0001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "stem too short",
			in:         "G001001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "stem too long",
			in:         "G00100001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "letters in digits",
			in:         "G00A0001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "empty stem",
			in:         ".JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "no extension",
			in:         "G0010001",
			wantReason: SkipExtension,
		},
		{
			name:       "empty string",
			in:         "",
			wantReason: SkipExtension,
		},
		{
			name:       "jpeg extension",
			in:         "G0010001.JPEG",
			wantReason: SkipExtension,
		},
		{
			name:       "png extension",
			in:         "G0010001.PNG",
			wantReason: SkipExtension,
		},
		{
			name:       "trailing dot",
			in:         "G0010001.",
			wantReason: SkipExtension,
		},
		{
			name:       "sidecar",
			in:         "leinfo.sav",
			wantReason: SkipExtension,
		},
		{
			name:       "time lapse video",
			in:         "G9990042.MP4",
			wantReason: SkipVideo,
		},
		{
			name:       "single video",
			in:         "GOPR0001.MP4",
			wantReason: SkipVideo,
		},
		{
			name:       "chaptered video old",
			in:         "GP010001.MP4",
			wantReason: SkipVideo,
		},
		{
			name:       "hevc video",
			in:         "GX010042.MP4",
			wantReason: SkipVideo,
		},
		{
			name:       "avc video lowercase ext",
			in:         "GH010042.mp4",
			wantReason: SkipVideo,
		},
		{
			name:       "looping chapter",
			in:         "GHAA0001.MP4",
			wantReason: SkipVideo,
		},
		{
			name:       "low resolution proxy",
			in:         "GX010042.LRV",
			wantReason: SkipVideo,
		},
		{
			name:       "thumbnail",
			in:         "GOPR0001.THM",
			wantReason: SkipVideo,
		},
		{
			name:       "mp4 with foreign stem",
			in:         "holiday.MP4",
			wantReason: SkipExtension,
		},
		{
			name:       "path separator",
			in:         "a/G0010001.JPG",
			wantReason: SkipPattern,
		},
		{
			name:       "backslash separator",
			in:         `a\G0010001.JPG`,
			wantReason: SkipPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			still, reason := Classify(tt.in)
			if reason != tt.wantReason {
				t.Errorf("Classify(%q) reason = %v, want %v", tt.in, reason, tt.wantReason)
			}
			if still != tt.wantStill {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.in, still, tt.wantStill)
			}
		})
	}
}

func TestClassify_RoundTrip(t *testing.T) {
	inputs := []string{
		"G0010001.JPG",
		"G0010001.GPR",
		"G0420123.jpg",
		"G9999999.gpr",
		"G0070000.JPG",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			still, reason := Classify(in)
			if reason != SkipNone {
				t.Fatalf("Classify(%q) reason = %v, want classified", in, reason)
			}
			again, reason := Classify(still.Name())
			if reason != SkipNone {
				t.Fatalf("Classify(%q) reason = %v, want classified", still.Name(), reason)
			}
			if again != still {
				t.Errorf("round trip = %+v, want %+v", again, still)
			}
		})
	}
}

func FuzzClassify(f *testing.F) {
	seeds := []string{
		"G0010001.JPG",
		"G0010001.GPR",
		"G0420123.jpg",
		"GOPR0001.MP4",
		"GX010042.LRV",
		"leinfo.sav",
		"",
		".JPG",
		"G00\x0000001.JPG",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, name string) {
		still, reason := Classify(name)
		if reason != SkipNone {
			if still != (Still{}) {
				t.Errorf("Classify(%q) = %+v with reason %v, want zero Still", name, still, reason)
			}
			return
		}
		again, r := Classify(still.Name())
		if r != SkipNone || again != still {
			t.Errorf("Classify(%q).Name() = %q does not round trip: %+v, %v", name, still.Name(), again, r)
		}
	})
}

func BenchmarkClassify(b *testing.B) {
	names := []string{
		"G0010001.JPG",
		"G0420123.gpr",
		"GOPR0001.MP4",
		"GX010042.LRV",
		"holiday.MP4",
		"leinfo.sav",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Classify(names[i%len(names)])
	}
}

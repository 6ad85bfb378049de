package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reel-processor/internal/domain/entities"
	"reel-processor/internal/pkg/config"
)

// --- Helpers ---

func testBuilder() *FFmpegBuilder {
	return NewFFmpegBuilder(config.MediaConfig{
		FFmpegPath:   "ffmpeg",
		Preset:       "veryfast",
		CRF:          23,
		AudioBitrate: "128k",
	})
}

func testJob() *entities.MediaJob {
	return &entities.MediaJob{
		ID:          "job-1",
		InputPath:   "/scratch/uploads/upload_1.mp4",
		AudioPath:   "/assets/audio/default.mp3",
		OutputPath:  "/scratch/outputs/output_1.mp4",
		PrimaryText: "Patience is a virtue",
		SourceText:  "Source: somewhere",
		MaxDuration: 60,
	}
}

// getToken mirrors libavutil's av_get_token: leading whitespace skipped, '...' copied
// verbatim, backslash escapes the next byte, unprotected trailing whitespace trimmed.
func getToken(buf, term string) (token, rest string) {
	p := strings.TrimLeft(buf, " \n\t\r")
	var out []byte
	end := 0
	for len(p) > 0 && !strings.ContainsRune(term, rune(p[0])) {
		c := p[0]
		p = p[1:]
		switch {
		case c == '\\' && len(p) > 0:
			out = append(out, p[0])
			p = p[1:]
			end = len(out)
		case c == '\'':
			for len(p) > 0 && p[0] != '\'' {
				out = append(out, p[0])
				p = p[1:]
			}
			if len(p) > 0 {
				p = p[1:]
				end = len(out)
			}
		default:
			out = append(out, c)
		}
	}
	for len(out) > end && strings.ContainsRune(" \n\t\r", rune(out[len(out)-1])) {
		out = out[:len(out)-1]
	}
	return string(out), p
}

type parsedFilter struct {
	name string
	opts map[string]string
}

// parseChain parses "[in]f1=args,f2=args[out]" the way ffmpeg's graph parser does.
func parseChain(t *testing.T, chain string) []parsedFilter {
	t.Helper()
	p := chain
	skipLabel := func() {
		for strings.HasPrefix(p, "[") {
			i := strings.Index(p, "]")
			require.GreaterOrEqual(t, i, 0)
			p = p[i+1:]
		}
	}
	skipLabel()

	var filters []parsedFilter
	for {
		i := strings.IndexAny(p, "=,[;")
		require.GreaterOrEqual(t, i, 0, "unterminated filter in %q", p)
		f := parsedFilter{name: p[:i], opts: map[string]string{}}
		p = p[i:]

		if strings.HasPrefix(p, "=") {
			var args string
			args, p = getToken(p[1:], "[],;")
			for positional := 0; args != ""; positional++ {
				var pair string
				pair, args = getKeyValue(args)
				if k, v, ok := strings.Cut(pair, "="); ok {
					f.opts[k] = v
				} else {
					f.opts[string(rune('0'+positional))] = pair
				}
				args = strings.TrimPrefix(args, ":")
			}
		}
		filters = append(filters, f)

		if strings.HasPrefix(p, ",") {
			p = p[1:]
			continue
		}
		skipLabel()
		require.Empty(t, p, "trailing data after chain")
		return filters
	}
}

// getKeyValue reads "key=" verbatim then the value as an option-level token.
func getKeyValue(args string) (string, string) {
	if i := strings.IndexAny(args, "=:"); i >= 0 && args[i] == '=' {
		key := args[:i]
		val, rest := getToken(args[i+1:], ":")
		return key + "=" + val, rest
	}
	val, rest := getToken(args, ":")
	return val, rest
}

func filterComplex(t *testing.T, args []string) string {
	t.Helper()
	for i, a := range args {
		if a == "-filter_complex" {
			require.Less(t, i+1, len(args))
			return args[i+1]
		}
	}
	t.Fatal("no -filter_complex in argv")
	return ""
}

func drawTexts(filters []parsedFilter) []parsedFilter {
	var out []parsedFilter
	for _, f := range filters {
		if f.name == "drawtext" {
			out = append(out, f)
		}
	}
	return out
}

// --- Build tests ---

func TestBuild_Skeleton(t *testing.T) {
	args := testBuilder().Build(testJob())

	require.Equal(t, "ffmpeg", args[0])
	require.Equal(t, "/scratch/outputs/output_1.mp4", args[len(args)-1])

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i /scratch/uploads/upload_1.mp4 -i /assets/audio/default.mp3",
		"-map [v] -map 1:a:0",
		"-c:v libx264 -preset veryfast -crf 23 -pix_fmt yuv420p",
		"-c:a aac -b:a 128k",
		"-shortest",
		"-t 60.00",
		"-movflags +faststart",
		"-nostdin -y",
	} {
		require.Contains(t, joined, want)
	}
}

func TestBuild_DropsOriginalAudio(t *testing.T) {
	args := testBuilder().Build(testJob())

	var maps []string
	for i, a := range args {
		if a == "-map" {
			maps = append(maps, args[i+1])
		}
	}
	require.Equal(t, []string{"[v]", "1:a:0"}, maps)
	require.NotContains(t, args, "0:a")
}

func TestBuild_NoMaxDuration(t *testing.T) {
	job := testJob()
	job.MaxDuration = 0
	require.NotContains(t, testBuilder().Build(job), "-t")
}

func TestBuild_Deterministic(t *testing.T) {
	b := testBuilder()
	require.Equal(t, b.Build(testJob()), b.Build(testJob()))
}

func TestBuild_FixedFrame(t *testing.T) {
	filters := parseChain(t, filterComplex(t, testBuilder().Build(testJob())))

	require.Equal(t, "scale", filters[0].name)
	require.Equal(t, "1080", filters[0].opts["0"])
	require.Equal(t, "1920", filters[0].opts["1"])
	require.Equal(t, "increase", filters[0].opts["force_original_aspect_ratio"])

	require.Equal(t, "crop", filters[1].name)
	require.Equal(t, "1080", filters[1].opts["0"])
	require.Equal(t, "1920", filters[1].opts["1"])

	require.Equal(t, "setsar", filters[2].name)
}

func TestBuild_EmptyTextSkipsOverlay(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		source  string
		want    int
	}{
		{"both", "a", "b", 2},
		{"primary only", "a", "", 1},
		{"source only", "", "b", 1},
		{"none", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := testJob()
			job.PrimaryText, job.SourceText = tt.primary, tt.source
			filters := parseChain(t, filterComplex(t, testBuilder().Build(job)))
			require.Len(t, drawTexts(filters), tt.want)
		})
	}
}

func TestBuild_OverlayPlacement(t *testing.T) {
	dt := drawTexts(parseChain(t, filterComplex(t, testBuilder().Build(testJob()))))
	require.Len(t, dt, 2)

	require.Equal(t, "Patience is a virtue", dt[0].opts["text"])
	require.Equal(t, "64", dt[0].opts["fontsize"])
	require.Equal(t, "(h-text_h)/2", dt[0].opts["y"])

	require.Equal(t, "Source: somewhere", dt[1].opts["text"])
	require.Equal(t, "36", dt[1].opts["fontsize"])
	require.Equal(t, "h-220", dt[1].opts["y"])

	for _, d := range dt {
		require.Equal(t, "none", d.opts["expansion"])
		require.Equal(t, "(w-text_w)/2", d.opts["x"])
	}
}

func TestBuild_FontFile(t *testing.T) {
	b := testBuilder()
	b.FontFile = "/usr/share/fonts/My Font: Bold,Italic.ttf"

	dt := drawTexts(parseChain(t, filterComplex(t, b.Build(testJob()))))
	require.Len(t, dt, 2)
	require.Equal(t, b.FontFile, dt[0].opts["fontfile"])
}

// --- Escaping ---

func TestEscapeFilterValue_RoundTrip(t *testing.T) {
	adversarial := []string{
		"plain",
		"it's",
		"'",
		"''",
		"'''quoted'''",
		`back\slash`,
		`\`,
		`\\`,
		`\'`,
		"a:b:c",
		"ratio=16:9",
		"comma, separated; list",
		"[0:v] label [out]",
		"50% off %{pts}",
		"  leading and trailing  ",
		"ünïcödé — ☪ ✓",
		"line\nbreak",
		`mix '\:,;[]= all`,
		`drawtext=text='pwned':fontsize=200`,
		"",
	}
	for _, text := range adversarial {
		t.Run(text, func(t *testing.T) {
			job := testJob()
			job.PrimaryText = text
			job.SourceText = text + "!"

			filters := parseChain(t, filterComplex(t, testBuilder().Build(job)))
			dt := drawTexts(filters)

			if text == "" {
				require.Len(t, dt, 1)
				require.Equal(t, "!", dt[0].opts["text"])
				return
			}
			require.Len(t, dt, 2, "text leaked into the graph structure")
			require.Equal(t, text, dt[0].opts["text"])
			require.Equal(t, text+"!", dt[1].opts["text"])
			require.Equal(t, "64", dt[0].opts["fontsize"])
		})
	}
}

func TestQuoteOptionValue(t *testing.T) {
	require.Equal(t, `'it'\''s'`, quoteOptionValue("it's"))
	got, rest := getToken(quoteOptionValue("a:b's"), ":")
	require.Equal(t, "a:b's", got)
	require.Empty(t, rest)
}

package certificate

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statValue(s string) *domain.StatValue {
	v := domain.StatValue(s)
	return &v
}

func approvedPlayer() domain.Player {
	stats := domain.EmptyStats()
	stats[domain.StatAtBats] = statValue("42")
	stats[domain.StatAVG] = statValue(".312")
	stats[domain.StatHR] = statValue("  ")

	return domain.Player{
		ID:            "p-123",
		SportCategory: "Baseball",
		PlayerName:    "Ana Ríos",
		EventName:     "Spring Classic",
		EventDate:     "2026-04-12",
		JerseyNumber:  "7",
		Status:        domain.StatusApproved,
		Stats:         stats,
	}
}

func TestBuild(t *testing.T) {
	l := Build(approvedPlayer(), 2026, "Test League")

	assert.Equal(t, "Ana Ríos", l.PlayerName)
	assert.Contains(t, l.Description, "Baseball")
	assert.Equal(t, []string{"Event: Spring Classic", "Date: 2026-04-12", "Jersey Number: 7"}, l.Details)
	assert.Equal(t, "Certificate ID: CERT-2026-p-123", l.CertificateID)
	assert.Equal(t, "Test League", l.Signature.Org)

	require.Len(t, l.Rows, len(domain.AllStats))
	assert.Equal(t, Row{Label: "At Bats (AB)", Value: "42"}, l.Rows[0])

	byLabel := map[string]string{}
	for _, r := range l.Rows {
		byLabel[r.Label] = r.Value
	}
	assert.Equal(t, ".312", byLabel["Batting Average (AVG)"])
	assert.Equal(t, "N/A", byLabel["Home Runs (HR)"], "blank values render as N/A")
	assert.Equal(t, "N/A", byLabel["ERA"], "null values render as N/A")
}

func TestBuildNilStats(t *testing.T) {
	p := approvedPlayer()
	p.Stats = nil

	l := Build(p, 2026, "Org")
	for _, r := range l.Rows {
		assert.Equal(t, "N/A", r.Value, r.Label)
	}
}

func TestRenderDeterministic(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC) }
	r := NewRendererWithClock("Test League", clock)

	first, err := r.Render(approvedPlayer())
	require.NoError(t, err)
	second, err := r.Render(approvedPlayer())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.Equal(t, first, second)
}

// pageText inflates every Flate stream in doc and concatenates the results.
func pageText(t *testing.T, doc []byte) []byte {
	t.Helper()

	var out []byte
	rest := doc
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			return out
		}
		isEnd := i >= 3 && string(rest[i-3:i]) == "end"
		rest = rest[i+len("stream\n"):]
		if isEnd {
			continue
		}
		j := bytes.Index(rest, []byte("\nendstream"))
		require.GreaterOrEqual(t, j, 0)

		raw := rest[:j]
		rest = rest[j:]

		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			continue
		}
		if data, err := io.ReadAll(zr); err == nil {
			out = append(out, data...)
		}
	}
}

func utf16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(units))
	for i, u := range units {
		binary.BigEndian.PutUint16(b[2*i:], u)
	}
	return b
}

func TestRenderNonLatinNames(t *testing.T) {
	r := NewRendererWithClock("Liga Sportowa", func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) })

	for _, name := range []string{"Łukasz Wiśniewski", "Nguyễn Văn An", "Иван Петров"} {
		t.Run(name, func(t *testing.T) {
			p := approvedPlayer()
			p.PlayerName = name

			doc, err := r.Render(p)
			require.NoError(t, err)

			text := pageText(t, doc)
			assert.True(t, bytes.Contains(text, utf16BE(name)), "name glyphs missing from page")
		})
	}
}

func TestFilename(t *testing.T) {
	r := NewRendererWithClock("Org", time.Now)

	assert.Equal(t, "certificate-ana-rios.pdf", r.Filename(approvedPlayer()))
	assert.Equal(t, "certificate-x1.pdf", r.Filename(domain.Player{ID: "x1"}))
}

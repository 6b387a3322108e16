// Package transcript fetches video captions and formats them as
// timestamp-prefixed transcript text.
package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kkdai/youtube/v2"
)

// Segment is one caption cue.
type Segment struct {
	Text  string
	Start time.Duration
}

// Result is a fetched transcript with the language reported by the
// caption track. The reported language is advisory; callers verify it
// against the content itself.
type Result struct {
	Segments []Segment
	Language string
}

// Fetcher retrieves transcripts for video URLs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// YouTubeFetcher fetches caption tracks through the YouTube client and
// parses the timedtext XML they point at.
type YouTubeFetcher struct {
	client     youtube.Client
	httpClient *http.Client
}

// NewYouTubeFetcher builds a fetcher. httpClient may be nil.
func NewYouTubeFetcher(httpClient *http.Client) *YouTubeFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &YouTubeFetcher{httpClient: httpClient}
}

// Fetch resolves the video, picks the best caption track and downloads
// its cues. Prefers a manually authored track over auto-generated ones,
// falling back to the first available track.
func (f *YouTubeFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	video, err := f.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("transcript: resolve video: %w", err)
	}
	if len(video.CaptionTracks) == 0 {
		return nil, fmt.Errorf("transcript: no captions available for video %s", video.ID)
	}

	track := pickTrack(video.CaptionTracks)
	segments, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("transcript: caption track %s is empty", track.LanguageCode)
	}

	return &Result{Segments: segments, Language: track.LanguageCode}, nil
}

func pickTrack(tracks []youtube.CaptionTrack) youtube.CaptionTrack {
	for _, t := range tracks {
		if t.Kind != "asr" {
			return t
		}
	}
	return tracks[0]
}

// timedtext XML as served by caption BaseURLs.
type xmlTranscript struct {
	XMLName xml.Name  `xml:"timedtext"`
	Cues    []xmlText `xml:"body>p"`
}

type xmlText struct {
	Start    int64        `xml:"t,attr"` // milliseconds
	Segments []xmlSegment `xml:"s"`
}

type xmlSegment struct {
	Text string `xml:",chardata"`
}

func (f *YouTubeFetcher) fetchTimedText(ctx context.Context, baseURL string) ([]Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("transcript: build caption request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcript: fetch captions: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript: fetch captions: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transcript: read captions: %w", err)
	}
	return parseTimedText(body)
}

func parseTimedText(data []byte) ([]Segment, error) {
	var doc xmlTranscript
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("transcript: parse timedtext: %w", err)
	}

	segments := make([]Segment, 0, len(doc.Cues))
	for _, cue := range doc.Cues {
		var text string
		for _, s := range cue.Segments {
			text += s.Text
		}
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:  text,
			Start: time.Duration(cue.Start) * time.Millisecond,
		})
	}
	return segments, nil
}

package service

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/reelay/cli/pkg/auth"
	"github.com/reelay/cli/pkg/config"
	"github.com/reelay/cli/pkg/errors"
	"github.com/reelay/cli/pkg/feed"
	"github.com/reelay/cli/pkg/formatter"
	"github.com/reelay/cli/pkg/logger"
)

// sessionItemExtent is the synthetic size of one feed item along the
// scroll axis. The terminal has no real gesture offsets, so navigation
// keys synthesize flick gestures in these units.
const sessionItemExtent = 100.0

// FeedSession hosts an interactive watch session in the terminal. It owns
// a feed engine and translates keystrokes into the gestures and actions a
// touch UI would produce: j/k flick to the next or previous video, l/f/s
// fire optimistic social actions, r reloads.
type FeedSession struct {
	engine *feed.Engine

	mu        sync.Mutex
	watchFrom time.Time
	watching  string
	viewCount int
	hasViews  bool
}

// NewFeedSession builds a session over the REST backend. actingUserID is
// empty for anonymous sessions, which watch the public feed and cannot
// perform social actions.
func NewFeedSession(actingUserID string) *FeedSession {
	s := &FeedSession{}
	authed := actingUserID != ""
	s.engine = feed.NewEngine(feed.Options{
		ActingUserID:    actingUserID,
		Authenticated:   func() bool { return authed },
		MaxWindow:       config.GetInt("feed.max_window"),
		PageSize:        config.GetInt("feed.page_size"),
		LowWaterMark:    config.GetInt("feed.low_water_mark"),
		PrefetchBatches: config.GetInt("feed.prefetch_batches"),
		PrefetchDelay:   time.Duration(config.GetInt("feed.prefetch_delay_ms")) * time.Millisecond,
		Debounce:        time.Duration(config.GetInt("feed.debounce_ms")) * time.Millisecond,
		ItemExtent:      sessionItemExtent,
	})
	return s
}

// Run loads the feed and enters the key loop. It blocks until the user
// quits or stdin closes.
func (s *FeedSession) Run() error {
	defer s.engine.Close()

	formatter.PrintInfo("Loading feed...")
	if err := s.engine.Load(false); err != nil {
		return errors.FeedUnavailableError(err)
	}

	if _, ok := s.engine.Current(); !ok {
		formatter.PrintWarning("The feed is empty right now. Try again later.")
		return nil
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	s.markWatching()
	s.render()
	s.printHelp()

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return nil
		}

		switch buf[0] {
		case 'j', ' ':
			s.flick(1)
		case 'k':
			s.flick(-1)
		case 'l':
			s.action("like", s.engine.OnLike)
		case 'f':
			s.action("follow", s.engine.OnFollow)
		case 's':
			s.action("save", s.engine.OnSave)
		case 'v':
			s.lookupViews()
		case 'r':
			s.reload()
		case '?', 'h':
			s.printHelp()
		case 'q', 3, 4: // q, Ctrl-C, Ctrl-D
			s.reportProgress()
			fmt.Print("\r\n")
			return nil
		}
	}
}

// flick synthesizes a full drag gesture one item forward or backward,
// driving the same reconciliation path a touch UI would.
func (s *FeedSession) flick(direction int) {
	s.reportProgress()

	_, cursor := s.engine.Snapshot()
	base := float64(cursor) * sessionItemExtent
	lift := base + float64(direction)*0.4*sessionItemExtent
	rest := base + float64(direction)*sessionItemExtent

	sc := s.engine.Scroll()
	sc.DragBegin()
	sc.DragMove(lift)
	sc.DragEnd(lift)
	sc.MomentumEnd(rest)

	s.markWatching()
	s.render()
}

// action runs a social action against the current video.
func (s *FeedSession) action(name string, fn func(videoID string)) {
	v, ok := s.engine.Current()
	if !ok {
		return
	}
	logger.Debug("Session action", "action", name, "video_id", v.ID)
	fn(v.ID)

	// The optimistic flip is visible immediately; a failed call rolls it
	// back in the background and the next render shows the truth.
	time.Sleep(50 * time.Millisecond)
	s.render()
}

// lookupViews fetches the play count for the current video. A newer
// lookup supersedes an in-flight one, so mashing v during fast
// navigation only ever reports on the video still on screen.
func (s *FeedSession) lookupViews() {
	v, ok := s.engine.Current()
	if !ok {
		return
	}
	s.engine.ViewCount(v.ID, func(count int) {
		s.mu.Lock()
		s.viewCount = count
		s.hasViews = true
		s.mu.Unlock()
		s.render()
	})
}

// reload replaces the feed wholesale and resets to the top. An expired
// session is refreshed once before giving up.
func (s *FeedSession) reload() {
	s.reportProgress()
	err := s.engine.Load(true)
	if err != nil && auth.IsSessionError(err) {
		if rerr := auth.NewSessionRecovery().HandleSessionError(err); rerr == nil {
			err = s.engine.Load(true)
		}
	}
	if err != nil {
		fmt.Printf("\r\nReload failed: %v\r\n", err)
		return
	}
	s.markWatching()
	s.render()
}

// markWatching stamps the start of playback for the video under the
// cursor and tells the recorder about it.
func (s *FeedSession) markWatching() {
	v, ok := s.engine.Current()
	if !ok {
		return
	}

	s.mu.Lock()
	s.watching = v.ID
	s.watchFrom = time.Now()
	s.hasViews = false
	s.mu.Unlock()

	s.engine.OnVideoStart(v.ID)
}

// reportProgress sends accumulated watch time for the video being left.
func (s *FeedSession) reportProgress() {
	s.mu.Lock()
	id := s.watching
	watched := time.Since(s.watchFrom).Seconds()
	s.watching = ""
	s.mu.Unlock()

	if id == "" {
		return
	}
	s.engine.OnVideoProgress(id, watched)
}

// render redraws the current video's line.
func (s *FeedSession) render() {
	videos, cursor := s.engine.Snapshot()
	if len(videos) == 0 {
		if state, err := s.engine.State(); state == feed.StateError {
			fmt.Printf("\r\nFeed unavailable: %v (press r to retry)\r\n", err)
		}
		return
	}
	v := videos[cursor]

	title := v.Title
	if title == "" {
		title = v.Description
	}
	if title == "" {
		title = v.ID
	}

	like := " "
	if v.LikedByMe {
		like = color.RedString("♥")
	}
	save := " "
	if v.SavedByMe {
		save = color.YellowString("*")
	}
	follow := ""
	if v.IsFollowingAuthor {
		follow = color.GreenString(" [following]")
	}

	views := ""
	s.mu.Lock()
	if s.hasViews {
		views = fmt.Sprintf("  %d views", s.viewCount)
	}
	s.mu.Unlock()

	fmt.Printf("\r\x1b[K[%d/%d] %s%s  %s  %s%d %s%d%s\r\n",
		cursor+1, len(videos),
		color.New(color.Bold).Sprintf("@%s", v.AuthorUsername),
		follow,
		title,
		like, v.LikeCount,
		save, v.SaveCount,
		views,
	)
}

func (s *FeedSession) printHelp() {
	fmt.Print("\r\nj/space next · k previous · l like · f follow · s save · v views · r reload · q quit\r\n")
}

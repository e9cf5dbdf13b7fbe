package commands

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/prompt"
	"tableflip.dev/notd/pkg/store"
)

// session is what every command works on: the configuration, the on-disk
// mirror and the diary restored from it.
type session struct {
	cfg   store.Config
	local *store.Local
	diary *diary.Store
	// mirrorErr is set when the mirror could not be read at startup. The
	// session then starts empty; loading and saving files still work.
	mirrorErr error
}

func openSession() (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	local, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return newSession(cfg, local, local), nil
}

// newSession restores the diary mirrored in kv. A mirror that cannot be read
// is reported by the Store's logger and leaves the diary empty.
func newSession(cfg store.Config, local *store.Local, kv store.KV) *session {
	d := diary.New(diary.WithMirror(store.NewMirror(kv)))
	s := &session{cfg: cfg, local: local, diary: d}
	if _, err := d.LoadFromLocalStorage(); err != nil {
		s.mirrorErr = err
	}
	return s
}

// saver prompts for a path when a terminal is attached and interactive
// saves are allowed, and writes to the downloads directory otherwise.
func (s *session) saver() files.Saver {
	return files.Pick(s.cfg.Interactive(),
		files.Dialog{Dir: s.cfg.Downloads()},
		files.Download{Dir: s.cfg.Downloads()},
	)
}

func (s *session) download() files.Saver {
	return files.Download{Dir: s.cfg.Downloads()}
}

func promptIO(cmd *cobra.Command) prompt.IO {
	return prompt.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

func placeCompletions(toComplete string) []string {
	s, err := openSession()
	if err != nil {
		return nil
	}
	seen := map[string]struct{}{}
	var places []string
	for _, e := range s.diary.Entries() {
		if _, ok := seen[e.Sender]; ok {
			continue
		}
		if strings.HasPrefix(strings.ToLower(e.Sender), strings.ToLower(toComplete)) {
			seen[e.Sender] = struct{}{}
			places = append(places, e.Sender)
		}
	}
	sort.Strings(places)
	return places
}

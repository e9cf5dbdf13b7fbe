package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/printers"
	"tableflip.dev/notd/pkg/store"
)

// Info reports where the diary is configured to live and what the mirror
// currently holds.
type Info struct {
	Config    store.Config
	Local     *store.Local
	Store     *diary.Store
	// MirrorErr is the error met reading the mirror at startup, if any.
	MirrorErr error
	Out       io.Writer
	JSON      bool
}

// Report is the JSON shape of info.
type Report struct {
	ConfigPath  string   `json:"configPath,omitempty"`
	ConfigFile  string   `json:"configFile,omitempty"`
	Path        string   `json:"path"`
	Downloads   string   `json:"downloads"`
	Interactive bool     `json:"interactive"`
	FileName    string   `json:"fileName,omitempty"`
	LastSaved   string   `json:"lastSaved,omitempty"`
	Entries     int      `json:"entries"`
	Keys        []string `json:"keys"`
	Mirror      string   `json:"mirror"`
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Local == nil {
		return fmt.Errorf("failed to open local storage")
	}

	keys := n.Local.Keys()
	sort.Strings(keys)

	r := Report{
		ConfigPath:  os.Getenv("NOTD_CONFIG_PATH"),
		ConfigFile:  store.ConfigFile(n.Config),
		Path:        n.Config.BasePath(),
		Downloads:   n.Config.Downloads(),
		Interactive: n.Config.Interactive(),
		Keys:        keys,
		Mirror:      "ok",
	}
	if n.MirrorErr != nil {
		r.Mirror = "unavailable: " + n.MirrorErr.Error()
	}
	if n.Store != nil {
		r.FileName = n.Store.FileName()
		r.LastSaved = n.Store.LastSaved().String()
		r.Entries = n.Store.Len()
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(r)
	}

	configPath := "NOTD_CONFIG_PATH env var not set"
	if r.ConfigPath != "" {
		configPath = r.ConfigPath
	}
	configFile := r.ConfigFile
	if configFile == "" {
		configFile = "none, using defaults"
	}
	pp.Title("Config")
	pp.Settings(
		printers.Setting{Name: "NOTD_CONFIG_PATH", Value: configPath},
		printers.Setting{Name: "config file", Value: configFile},
		printers.Setting{Name: "path", Value: r.Path},
		printers.Setting{Name: "downloads", Value: r.Downloads},
		printers.Setting{Name: "interactive", Value: strconv.FormatBool(r.Interactive)},
		printers.Setting{Name: "mirror", Value: r.Mirror},
	)
	pp.NewLine()

	pp.Title("Local storage")
	infos := make([]printers.KeyInfo, 0, len(keys))
	for _, k := range keys {
		fi, err := n.Local.Stat(k)
		if err != nil {
			continue
		}
		infos = append(infos, printers.KeyInfo{Key: k, Size: fi.Size(), Modified: fi.ModTime()})
	}
	pp.Keys(time.Now(), infos...)
	pp.NewLine()

	if n.Store != nil {
		pp.Status(r.FileName, n.Store.LastSaved(), r.Entries)
	}
	return nil
}

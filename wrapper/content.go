package wrapper

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/user-none/eblitcore/abi"
	emucore "github.com/user-none/eblitcore/api"
	"github.com/user-none/eblitcore/rdb"
	"github.com/user-none/eblitcore/romloader"
)

// readContent copies host content into a GameInfo owned by the wrapper.
// Path-only content is read from disk unless the core opens the path
// itself.
func (s *State) readContent(info *abi.GameInfo) (*emucore.GameInfo, error) {
	game := &emucore.GameInfo{
		Path: abi.GoString(info.Path),
		Meta: abi.GoString(info.Meta),
	}
	sys := s.core.SystemInfo()

	switch {
	case info.Data != nil && info.Size > 0:
		game.Data = bytes.Clone(unsafe.Slice((*byte)(info.Data), info.Size))
	case game.Path == "":
		return nil, emucore.ErrNoContent
	default:
		loader := romloader.New(sys.Extensions, s.cfg.contentLimit())
		if !sys.NeedFullpath || (sys.BlockExtract && loader.IsArchive(game.Path)) {
			content, err := loader.Load(game.Path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", game.Path, err)
			}
			game.Data = content.Data
			game.Name = strings.TrimSuffix(content.Name, filepath.Ext(content.Name))
			if content.Archive != "" {
				s.log.Debug("Extracted content",
					zap.String("archive", content.Archive),
					zap.String("member", content.Name),
				)
			}
		}
	}

	if game.Data != nil {
		game.Entry, game.CRC32 = s.gameDB(sys).Lookup(game.Data)
	}
	if game.Entry != nil && game.Entry.Name != "" {
		game.Name = rdb.DisplayName(game.Entry.Name)
	}
	if game.Name == "" && game.Path != "" {
		base := filepath.Base(game.Path)
		game.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	s.log.Info("Loaded content",
		zap.String("name", game.Name),
		zap.String("size", humanize.Bytes(uint64(len(game.Data)))),
		zap.String("crc32", fmt.Sprintf("%08X", game.CRC32)),
		zap.Bool("known", game.Entry != nil),
	)
	return game, nil
}

// gameDB returns the game database for the system, or nil when there is
// none.
func (s *State) gameDB(sys emucore.SystemInfo) *rdb.RDB {
	if s.db == nil {
		return nil
	}
	path := s.cfg.GameDB
	if path == "" {
		if sys.DatabaseName == "" {
			return nil
		}
		dir, ok := s.coreEnv.SystemDirectory()
		if !ok || dir == "" {
			return nil
		}
		path = filepath.Join(dir, sys.DatabaseName+".rdb")
	}
	db, err := s.db.Load(path)
	if err != nil {
		s.log.Debug("No game database", zap.String("path", path), zap.Error(err))
		return nil
	}
	return db
}

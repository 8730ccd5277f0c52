// Package rdb reads libretro game databases (.rdb), a MessagePack stream of
// one map per game following a 16 byte header.
package rdb

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// headerSize covers the magic and the offset of the trailing metadata map.
const headerSize = 0x10

var magic = []byte("RARCHDB\x00")

// ErrNotRDB is returned for data that does not start with the RDB magic.
var ErrNotRDB = errors.New("not an RDB file")

// Game is one database entry.
type Game struct {
	Name         string // No-Intro name, e.g. "Sonic the Hedgehog (USA, Europe)"
	Description  string
	Genre        string
	Developer    string
	Publisher    string
	Franchise    string
	ESRBRating   string
	ROMName      string
	ReleaseMonth uint
	ReleaseYear  uint
	Size         uint64
	CRC32        uint32
	Serial       string
	MD5          string // lowercase hex
}

// RDB is a parsed database indexed by content CRC32.
type RDB struct {
	games   []Game
	byCRC32 map[uint32]*Game
}

// LoadRDB reads and parses the database at path.
func LoadRDB(path string) (*RDB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read RDB file: %w", err)
	}
	db, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// Parse decodes database content. Entries stop at the nil marker that
// precedes the metadata map, or at the end of the data.
func Parse(data []byte) (*RDB, error) {
	if len(data) < headerSize || !bytes.HasPrefix(data, magic) {
		return nil, ErrNotRDB
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data[headerSize:]))
	var games []Game
	for {
		code, err := dec.PeekCode()
		if errors.Is(err, io.EOF) || code == msgpcode.Nil {
			break
		}
		if err != nil {
			return nil, err
		}
		g, err := decodeGame(dec)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(games), err)
		}
		if g.Name != "" || g.CRC32 != 0 {
			games = append(games, g)
		}
	}
	return index(games), nil
}

func index(games []Game) *RDB {
	db := &RDB{
		games:   games,
		byCRC32: make(map[uint32]*Game, len(games)),
	}
	for i := range db.games {
		if crc := db.games[i].CRC32; crc != 0 {
			db.byCRC32[crc] = &db.games[i]
		}
	}
	return db
}

func decodeGame(dec *msgpack.Decoder) (Game, error) {
	var g Game
	n, err := dec.DecodeMapLen()
	if err != nil {
		return g, err
	}
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return g, err
		}
		v, err := decodeValue(dec)
		if err != nil {
			return g, fmt.Errorf("field %q: %w", key, err)
		}
		setField(&g, key, v)
	}
	return g, nil
}

// decodeValue returns bin as []byte. The loose decoder yields a string for
// bin, the same as for str.
func decodeValue(dec *msgpack.Decoder) (any, error) {
	code, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}
	switch code {
	case msgpcode.Bin8, msgpcode.Bin16, msgpcode.Bin32:
		return dec.DecodeBytes()
	}
	return dec.DecodeInterfaceLoose()
}

// setField stores a decoded value. Strings may arrive as str or bin and
// numbers as uint or big-endian bin depending on the database generator.
func setField(g *Game, key string, v any) {
	switch key {
	case "name":
		g.Name = text(v)
	case "description":
		g.Description = text(v)
	case "genre":
		g.Genre = text(v)
	case "developer":
		g.Developer = text(v)
	case "publisher":
		g.Publisher = text(v)
	case "franchise":
		g.Franchise = text(v)
	case "esrb_rating":
		g.ESRBRating = text(v)
	case "serial":
		g.Serial = text(v)
	case "rom_name":
		g.ROMName = text(v)
	case "size":
		g.Size = number(v)
	case "releasemonth":
		g.ReleaseMonth = uint(number(v))
	case "releaseyear":
		g.ReleaseYear = uint(number(v))
	case "crc":
		g.CRC32 = uint32(number(v))
	case "md5":
		if b, ok := v.([]byte); ok {
			g.MD5 = hex.EncodeToString(b)
		} else {
			g.MD5 = strings.ToLower(text(v))
		}
	}
}

func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

func number(v any) uint64 {
	switch v := v.(type) {
	case uint64:
		return v
	case int64:
		if v > 0 {
			return uint64(v)
		}
	case []byte:
		if len(v) > 8 {
			return 0
		}
		var buf [8]byte
		copy(buf[8-len(v):], v)
		return binary.BigEndian.Uint64(buf[:])
	}
	return 0
}

// FindByCRC32 returns the entry for a content checksum, or nil.
func (db *RDB) FindByCRC32(crc uint32) *Game {
	if db == nil {
		return nil
	}
	return db.byCRC32[crc]
}

// Lookup checksums content and returns its entry, if any, along with the
// checksum.
func (db *RDB) Lookup(data []byte) (*Game, uint32) {
	sum := Checksum(data)
	return db.FindByCRC32(sum), sum
}

// Len returns the number of entries.
func (db *RDB) Len() int {
	if db == nil {
		return 0
	}
	return len(db.games)
}

// Checksum returns the IEEE CRC32 databases index content by.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// DisplayName strips the parenthesised region and revision tags from a
// No-Intro name.
func DisplayName(name string) string {
	if idx := strings.Index(name, " ("); idx > 0 {
		return strings.TrimSpace(name[:idx])
	}
	return name
}

// RegionFromName returns "us", "eu", "jp" or "" for a No-Intro name.
// Multi-region and world releases count as "us".
func RegionFromName(name string) string {
	lower := strings.ToLower(name)
	has := func(tags ...string) bool {
		for _, t := range tags {
			if strings.Contains(lower, t) {
				return true
			}
		}
		return false
	}

	switch {
	case has("(usa", "(us)", ", usa)", "(world)"):
		return "us"
	case has("(europe", "(eu)", ", europe)"):
		return "eu"
	case has("(japan", "(jp)", ", japan)"):
		return "jp"
	}
	return ""
}

package libsvm

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/recgo/sparse"
)

const maxLineSize = 16 << 20

// ErrSyntax reports a malformed `item:rating` token.
type ErrSyntax struct {
	Line  int
	Token string
	cause error
}

func (e *ErrSyntax) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("libsvm: line %d: invalid token %q: %v", e.Line, e.Token, e.cause)
	}
	return fmt.Sprintf("libsvm: line %d: invalid token %q", e.Line, e.Token)
}

func (e *ErrSyntax) Unwrap() error { return e.cause }

// FormatVector renders v as a single LIBSVM line without the trailing newline.
func FormatVector(v sparse.Vector) string {
	var sb strings.Builder
	for i, item := range v.SortedItems() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(uint64(item), 10))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(v[item], 'g', -1, 64))
	}
	return sb.String()
}

// Encode writes every user of store as one line, from user index 1 up to the
// largest user index. It returns the number of lines written.
func Encode(w io.Writer, store *sparse.Store) (int, error) {
	bw := bufio.NewWriter(w)
	users := store.Users()

	lines := 0
	var next uint32 = 1
	for _, u := range users {
		// Keep line number == user index.
		for ; next < u; next++ {
			if err := bw.WriteByte('\n'); err != nil {
				return lines, err
			}
			lines++
		}
		if _, err := bw.WriteString(FormatVector(store.Get(u))); err != nil {
			return lines, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return lines, err
		}
		lines++
		next = u + 1
	}
	return lines, bw.Flush()
}

// Decode reads LIBSVM lines into store. Line n becomes user index n.
// It returns the number of lines read.
func Decode(r io.Reader, store *sparse.Store) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		if uint64(line) > math.MaxUint32 {
			return line, fmt.Errorf("libsvm: too many lines")
		}
		user := uint32(line)
		for _, tok := range strings.Fields(sc.Text()) {
			item, rating, err := parseToken(tok)
			if err != nil {
				return line, &ErrSyntax{Line: line, Token: tok, cause: err}
			}
			store.Set(user, item, rating)
		}
	}
	if err := sc.Err(); err != nil {
		return line, err
	}
	return line, nil
}

// Read decodes r into a new store.
func Read(r io.Reader) (*sparse.Store, error) {
	store := sparse.NewStore()
	if _, err := Decode(r, store); err != nil {
		return nil, err
	}
	return store, nil
}

// parseToken parses `item:rating`. The item index may be written as a float
// ("3.0") and is truncated, matching tools that emit every value as float.
func parseToken(tok string) (uint32, float64, error) {
	idxStr, valStr, ok := strings.Cut(tok, ":")
	if !ok {
		return 0, 0, fmt.Errorf("missing ':'")
	}
	idx, err := strconv.ParseFloat(idxStr, 64)
	if err != nil {
		return 0, 0, err
	}
	if idx < 1 || idx > math.MaxUint32 || math.IsNaN(idx) {
		return 0, 0, fmt.Errorf("item index %s out of range", idxStr)
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, 0, err
	}
	return uint32(idx), val, nil
}

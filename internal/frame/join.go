package frame

import (
	"fmt"
	"strings"
)

// OuterJoin combines two frames on the named key columns, keeping every key
// present in either side. Unmatched cells on the other side become nulls.
// Key columns must exist on both sides with identical kinds. Non-key column
// names must not collide.
//
// Each side is expected to hold at most one row per key (the loaders dedup
// before joining); if a key repeats, rows pair up positionally within the
// key and the longer side's surplus pairs with nulls, so no row is ever
// dropped.
func OuterJoin(left, right *Frame, keys []string) (*Frame, error) {
	lk, err := keyColumns(left, keys)
	if err != nil {
		return nil, err
	}
	rk, err := keyColumns(right, keys)
	if err != nil {
		return nil, err
	}
	for i := range keys {
		if lk[i].kind != rk[i].kind {
			return nil, fmt.Errorf("join %s/%s: key %s is %s on the left and %s on the right",
				left.name, right.name, keys[i], lk[i].kind, rk[i].kind)
		}
	}

	isKey := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		isKey[k] = struct{}{}
	}
	for _, c := range right.cols {
		if _, ok := isKey[c.name]; ok {
			continue
		}
		if left.HasCol(c.name) {
			return nil, fmt.Errorf("join %s/%s: column %s exists on both sides", left.name, right.name, c.name)
		}
	}

	// Index right rows by key, preserving row order within a key.
	rightByKey := make(map[string][]int, right.nrows)
	rightOrder := make([]string, 0, right.nrows)
	for r := 0; r < right.nrows; r++ {
		k := joinKey(rk, r)
		if _, ok := rightByKey[k]; !ok {
			rightOrder = append(rightOrder, k)
		}
		rightByKey[k] = append(rightByKey[k], r)
	}

	outName := left.name + "+" + right.name
	keyCols := make([]*Column, len(keys))
	for i, c := range lk {
		keyCols[i] = NewColumn(c.name, c.kind)
	}
	var leftCols, rightCols []*Column
	var leftSrc, rightSrc []*Column
	for _, c := range left.cols {
		if _, ok := isKey[c.name]; ok {
			continue
		}
		leftCols = append(leftCols, NewColumn(c.name, c.kind))
		leftSrc = append(leftSrc, c)
	}
	for _, c := range right.cols {
		if _, ok := isKey[c.name]; ok {
			continue
		}
		rightCols = append(rightCols, NewColumn(c.name, c.kind))
		rightSrc = append(rightSrc, c)
	}

	emit := func(lrow, rrow int) {
		for i, c := range keyCols {
			if lrow >= 0 {
				c.appendFrom(lk[i], lrow)
			} else {
				c.appendFrom(rk[i], rrow)
			}
		}
		for i, c := range leftCols {
			if lrow >= 0 {
				c.appendFrom(leftSrc[i], lrow)
			} else {
				c.AppendNull()
			}
		}
		for i, c := range rightCols {
			if rrow >= 0 {
				c.appendFrom(rightSrc[i], rrow)
			} else {
				c.AppendNull()
			}
		}
	}

	// Left rows first, pairing positionally within each key.
	leftSeen := make(map[string]int, left.nrows)
	matched := make(map[string]int, len(rightByKey))
	for r := 0; r < left.nrows; r++ {
		k := joinKey(lk, r)
		pos := leftSeen[k]
		leftSeen[k]++
		rows := rightByKey[k]
		if pos < len(rows) {
			emit(r, rows[pos])
			matched[k]++
		} else {
			emit(r, -1)
		}
	}
	// Then right-only rows, in right order.
	for _, k := range rightOrder {
		rows := rightByKey[k]
		for i := matched[k]; i < len(rows); i++ {
			emit(-1, rows[i])
		}
	}

	all := make([]*Column, 0, len(keyCols)+len(leftCols)+len(rightCols))
	all = append(all, keyCols...)
	all = append(all, leftCols...)
	all = append(all, rightCols...)
	return New(outName, all...)
}

func keyColumns(f *Frame, keys []string) ([]*Column, error) {
	out := make([]*Column, len(keys))
	for i, k := range keys {
		c, err := f.Col(k)
		if err != nil {
			return nil, fmt.Errorf("join key: %w", err)
		}
		out[i] = c
	}
	return out, nil
}

func joinKey(cols []*Column, row int) string {
	var b strings.Builder
	for _, c := range cols {
		b.WriteString(c.cellKey(row))
		b.WriteByte('\x1f')
	}
	return b.String()
}

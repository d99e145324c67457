package aggregate

import "brc/radix"

// ScanSegment feeds every record in mem into the tree. mem must hold whole
// records only, each one terminated by '\n' except possibly the last.
func ScanSegment(mem []byte, t *radix.Tree) {
	pos := 0
	for pos < len(mem) {
		pos = processLine(mem, pos, t)
	}
}

func processLine(mem []byte, pos int, t *radix.Tree) int {
	node := t.Lookup(mem, pos)
	if node == nil {
		node = t.Insert(mem, pos)
	}

	temp, next := parseTemperature(mem, pos+int(node.KeyLength))
	node.Add(temp)
	return next
}

// parseTemperature parses -?d?d.d at mem[pos] into tenths of a degree and
// returns the position of the next record. The last record of a file may
// end without a newline.
func parseTemperature(mem []byte, pos int) (int32, int) {
	negative := false
	if mem[pos] == '-' {
		negative = true
		pos++
	}

	var temp int32
	if mem[pos+1] == '.' {
		temp = int32(mem[pos]-'0')*10 + int32(mem[pos+2]-'0')
		pos += 3
	} else {
		temp = int32(mem[pos]-'0')*100 + int32(mem[pos+1]-'0')*10 + int32(mem[pos+3]-'0')
		pos += 4
	}
	if negative {
		temp = -temp
	}

	if pos < len(mem) && mem[pos] == '\r' {
		pos++
	}
	return temp, pos + 1
}

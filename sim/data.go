package sim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/milosgajdos/go-localize/landmark"
)

// ReadMap parses landmark map data from r and returns the loaded map.
// Every non-empty line holds one landmark as whitespace separated values:
// map frame x, map frame y and integer landmark id. It returns error if a
// record is malformed or if the data holds no landmarks.
func ReadMap(r io.Reader) (*landmark.Map, error) {
	var landmarks []landmark.Landmark

	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}

		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid landmark record on line %d", line)
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid landmark x on line %d: %v", line, err)
		}

		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid landmark y on line %d: %v", line, err)
		}

		id, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("invalid landmark id on line %d: %v", line, err)
		}

		landmarks = append(landmarks, landmark.Landmark{ID: id, X: x, Y: y})
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map data: %v", err)
	}

	return landmark.NewMap(landmarks)
}

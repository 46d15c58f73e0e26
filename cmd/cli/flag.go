package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// sheet is a material sheet given as "wxh"; a single number means a square.
type sheet struct {
	w, h float64
}

func (s *sheet) String() string {
	return fmt.Sprintf("%vx%v", s.w, s.h)
}

func (s *sheet) Set(value string) error {
	wh := strings.Split(strings.TrimSpace(value), "x")
	switch len(wh) {
	case 1:
		wh = append(wh, wh[0])
	case 2:
	default:
		return errors.New("need to specify sheet as wxh")
	}

	w, err := strconv.ParseFloat(wh[0], 64)
	if err != nil {
		return errors.New("can't get sheet width")
	}

	h, err := strconv.ParseFloat(wh[1], 64)
	if err != nil {
		return errors.New("can't get sheet height")
	}

	if w <= 0 || h <= 0 {
		return errors.New("sheet dimensions must be positive")
	}

	s.w, s.h = w, h
	return nil
}

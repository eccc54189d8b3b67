package model

import "errors"

var errInvalidWeights = errors.New("soft conflict weights must satisfy w_avail > w_meet > w_section > 0")

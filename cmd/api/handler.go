package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/innermond/bellong"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func bellows(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Type", "application/json")

	urlpath := strings.TrimRight(r.URL.Path, "/")
	if r.Method == http.MethodGet && urlpath == API_PATH+"/health" {
		defer r.Body.Close()
		fmt.Fprintf(w, "%v", atomic.LoadInt32(&serverHealth) == 1)
		return
	}

	rid := getid(r)
	var err = errid{reqid: rid}

	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		return
	default:
		werr(w, err.text("bellows: unexpected method used"), 405, "method not allowed")
		return
	}

	// only 2 endpoints
	if urlpath != API_PATH {
		werr(w, err.text("bellows: resource not found"), 404, "not found")
		return
	}

	// get input data over the defaults
	req := defaultRequest()
	{
		defer r.Body.Close()
		dec := json.NewDecoder(r.Body)
		fail := dec.Decode(&req)
		var (
			msg  string
			code int
		)
		if fail != nil {
			switch fail.(type) {
			case *json.SyntaxError:
				msg = "json syntax malformation"
				code = 400 // bad request
			default:
				if fail == io.EOF || fail == io.ErrUnexpectedEOF {
					msg = "json syntax malformation"
					code = 400
					break
				}
				msg = "invalid data"
				code = 422 // unprocessable entity
			}
			if werr(w, err.wrap(fail, "fail decoding json input"), code, msg) {
				return
			}
		}
	}

	// unique name
	var outname string
	{
		chars := []byte("abcdefghijklmnopqrstuvwxyz")
		lenchars := len(chars)
		var b strings.Builder
		for i := 0; i < 12; i++ {
			b.WriteByte(chars[rand.Intn(lenchars)])
		}
		outname = b.String()
	}

	rep, outs, fail := req.op(outname).Pattern()
	if fail != nil {
		switch errors.Cause(fail) {
		case bellong.ErrInvalidConfiguration, bellong.ErrUnknownPage:
			werr(w, err.from(fail), 422, fail.Error())
		default:
			werr(w, err.from(fail), 500, "pattern error")
		}
		return
	}

	svgs, errs := readSvg(outs)
	if len(errs) > 0 {
		werr(w, err.from(errs[0]), 500, "error preparing svg vizual")
		return
	}

	out := struct {
		Rep  *bellong.Report   `json:"rep,omitempty"`
		Svgs map[string]string `json:"svgs,omitempty"`
	}{
		rep,
		svgs,
	}
	b, fail := json.Marshal(out)
	if fail != nil {
		werr(w, err.from(fail), 500, "json error")
		return
	}

	log.WithFields(log.Fields{"reqid": rid, "folds": rep.Folds, "files": len(rep.Files)}).Debug("pattern served")

	io.Copy(w, bytes.NewReader(b))
}

func readSvg(outs []bellong.PatternReader) (svgs map[string]string, errs []error) {
	svgs = map[string]string{}
	for _, out := range outs {
		for nm, r := range out {
			b, err := io.ReadAll(r)
			if err != nil {
				errs = append(errs, errors.Wrap(err, nm))
				continue
			}
			svgs[nm] = string(b)
		}
	}
	return
}

func werr(w http.ResponseWriter, err error, code int, msg string) bool {
	// no error leave
	if err == nil {
		return false
	}

	if debug {
		// for debugging
		if x, ok := err.(errid); ok {
			log.WithField("reqid", x.reqid).Errorf("%+v", x.err)
		}
	} else {
		// for logging
		log.Error(err)
	}

	// for client
	http.Error(w, msg, code)

	return true
}

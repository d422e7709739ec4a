// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/bitmark-inc/mintauth/fault"
)

const (
	requestTimeout = 30 * time.Second
	maximumReply   = 16 * 1024 * 1024
)

// Client - to hold the HTTP connection details of a mintauthd
type Client struct {
	url     string
	client  *http.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// Error - an error reply from mintauthd
type Error struct {
	Status  int    `json:"-"`
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if fault.ExitFailure == e.Code {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s (code: %d)", e.Status, e.Message, e.Code)
}

// Protocol - the matching protocol rejection, if any
func (e *Error) Protocol() (*fault.ProtocolError, bool) {
	return fault.FromCode(e.Code)
}

type errorReply struct {
	Error *Error `json:"error"`
}

// NewClient - create a client for a mintauthd
//
// connect is either a full URL or HOST:PORT, which implies https
func NewClient(connect string, insecure bool, verbose bool, handle io.Writer) (*Client, error) {
	if "" == connect {
		return nil, fault.MissingParameters
	}
	if !strings.Contains(connect, "://") {
		connect = "https://" + connect
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: insecure,
		MinVersion:         tls.VersionTLS12,
	}

	r := &Client{
		url: strings.TrimRight(connect, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - release idle connections
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

func (c *Client) get(path string, reply interface{}) error {
	return c.call(http.MethodGet, path, nil, reply)
}

func (c *Client) post(path string, arguments interface{}, reply interface{}) error {
	return c.call(http.MethodPost, path, arguments, reply)
}

func (c *Client) call(method string, path string, arguments interface{}, reply interface{}) error {

	var body io.Reader
	if nil != arguments {
		b, err := json.Marshal(arguments)
		if nil != err {
			return err
		}
		c.printJSON("request", arguments)
		body = bytes.NewReader(b)
	}

	request, err := http.NewRequest(method, c.url+path, body)
	if nil != err {
		return err
	}
	if nil != body {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.client.Do(request)
	if nil != err {
		return err
	}
	defer response.Body.Close()

	data, err := ioutil.ReadAll(io.LimitReader(response.Body, maximumReply))
	if nil != err {
		return err
	}

	if c.verbose {
		fmt.Fprintf(c.handle, "%s %s: %s\n", method, path, response.Status)
	}

	if http.StatusOK != response.StatusCode {
		var e errorReply
		err := json.Unmarshal(data, &e)
		if nil != err || nil == e.Error {
			return &Error{
				Status:  response.StatusCode,
				Code:    fault.ExitFailure,
				Message: strings.TrimSpace(string(data)),
			}
		}
		e.Error.Status = response.StatusCode
		return e.Error
	}

	err = json.Unmarshal(data, reply)
	if nil != err {
		return err
	}
	c.printJSON("reply", reply)
	return nil
}

func (c *Client) printJSON(title string, message interface{}) {
	if !c.verbose {
		return
	}
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return
	}
	fmt.Fprintf(c.handle, "%s: %s\n", title, b)
}

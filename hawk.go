// Package hawk implements the Hawk HTTP MAC authentication scheme: clients
// build Authorization request headers and validate Server-Authorization/
// WWW-Authenticate response headers, servers validate inbound Authorization
// headers and issue WWW-Authenticate timestamp challenges.
//
// Easiest is to use the provided client:
//
//	c := &http.Client{}
//	hc := hawk.NewClient("Hawk ID", []byte("secret"), hawk.SHA256, 0)
//	body := io.Reader(strings.NewReader("Hello world!"))
//	req, err := hc.NewRequest("POST", "https://example.com/greeting", body, "text/plain", "")
//	resp, err := c.Do(req)
//
// But if you want to skip payload verification or want to make life harder:
//
//	body := io.Reader(strings.NewReader("Hello world!"))
//	req, _ := http.NewRequest("POST", "https://example.com/greeting", body)
//	hd := hawk.Details{
//	    Algorithm:   hawk.SHA256,
//	    Host:        "example.com",
//	    Port:        "443",
//	    URI:         "/greeting",
//	    ContentType: "plain/text",
//	    Content:     []byte("Hello world!"),
//	    Method:      "POST"}
//	h, _ := hd.Create()
//	// h.Validate(hawk.DefaultPayloadHasher(hawk.SHA256))
//	h.Finalize([]byte("secret"))
//	auth := h.GetAuthorization("Hawk ID")
//	req.Header.Add("Content-Type", "plain/text")
//	req.Header.Add("Authorization", auth)
//	resp, err := c.Do(req)
package hawk

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Hawk is the outbound request-signing state: the request identity
// (host/port/uri/method), the credentials in play (timestamp, nonce), and
// once Finalize has run, the computed MAC. It is the one-shot counterpart to
// Details.Create; build a new Hawk per request.
type Hawk struct {
	algorithm Algorithm

	host      string
	port      string
	uri       string
	method    string
	timestamp int64
	nonce     string

	reqContentType string
	reqContent     []byte
	reqExt         string
	reqApp         string
	reqDlg         string
	reqHash        string
	reqMAC         string
}

// Details is the data required to create a Hawk instance. Nonce and/or
// Timestamp may be left zero to have Create fill them in automatically.
type Details struct {
	Algorithm   Algorithm
	Host        string
	Port        string
	URI         string
	ContentType string
	Content     []byte
	Method      string
	Timestamp   int64
	Nonce       string
	Ext         string
	App         string
	Dlg         string
}

// Create builds a Hawk instance from Details, generating a nonce and/or
// timestamp if they were left unset. It reports an error for any missing
// Host, Port, URI, Method, or Algorithm — all of which feed the base string
// and can't be defaulted.
func (hd *Details) Create() (Hawk, error) {
	switch {
	case hd.Algorithm.New == nil:
		return Hawk{}, fmt.Errorf("%w: no algorithm provided", ErrUnknownAlgorithm)
	case hd.Host == "":
		return Hawk{}, fmt.Errorf("%w: no host provided", ErrParse)
	case hd.Port == "":
		return Hawk{}, fmt.Errorf("%w: no port provided", ErrParse)
	case hd.URI == "":
		return Hawk{}, fmt.Errorf("%w: no URI provided", ErrParse)
	case hd.Method == "":
		return Hawk{}, fmt.Errorf("%w: no method provided", ErrParse)
	}

	h := Hawk{
		algorithm:      hd.Algorithm,
		host:           hd.Host,
		port:           hd.Port,
		uri:            hd.URI,
		method:         hd.Method,
		timestamp:      hd.Timestamp,
		nonce:          hd.Nonce,
		reqContentType: hd.ContentType,
		reqContent:     hd.Content,
		reqExt:         hd.Ext,
		reqApp:         hd.App,
		reqDlg:         hd.Dlg,
	}
	if h.nonce == "" {
		nonce, err := NewNonce()
		if err != nil {
			return Hawk{}, err
		}
		h.nonce = nonce
	}
	if h.timestamp == 0 {
		h.timestamp = time.Now().Unix()
	}
	return h, nil
}

// PayloadHasher computes a payload hash for the given content type and body.
// Hawk's core does not compute payload hashes on its own; this is the
// opt-in hook a caller passes to Validate when they want one.
type PayloadHasher func(contentType string, content []byte) (string, error)

// DefaultPayloadHasher returns a PayloadHasher following the classic Hawk
// "hawk.1.payload\n<contentType>\n<content>\n" construction, hashed (not
// HMAC'd) with alg.
func DefaultPayloadHasher(alg Algorithm) PayloadHasher {
	return func(contentType string, content []byte) (string, error) {
		if alg.New == nil {
			return "", fmt.Errorf("%w: no algorithm provided", ErrUnknownAlgorithm)
		}
		hasher := alg.New()
		hasher.Write([]byte("hawk.1.payload\n"))
		hasher.Write([]byte(contentType))
		hasher.Write([]byte{'\n'})
		hasher.Write(content)
		hasher.Write([]byte{'\n'})
		return EncodeString(hasher.Sum(nil)), nil
	}
}

// Validate computes and sets the payload hash using hasher. It returns false
// (and does nothing) once a MAC has already been set, or if no content type
// was given — call it before Finalize when payload validation is required.
func (h *Hawk) Validate(hasher PayloadHasher) bool {
	if h.reqMAC != "" || h.reqContentType == "" || hasher == nil {
		return false
	}
	hash, err := hasher(h.reqContentType, h.reqContent)
	if err != nil {
		return false
	}
	h.reqHash = hash
	return true
}

// Finalize computes and sets the Hawk MAC. It returns false without change if
// timestamp, nonce, method, uri, host or port are unset, or a MAC is already
// present.
func (h *Hawk) Finalize(key []byte) bool {
	if h.timestamp == 0 || h.nonce == "" || h.method == "" || h.uri == "" || h.host == "" || h.port == "" || h.reqMAC != "" {
		return false
	}
	base, err := BuildAuthBaseString(nil, h.timestamp, h.nonce, h.method, h.uri, h.host, h.port, h.reqHash, h.reqExt, h.reqApp, h.reqDlg)
	if err != nil {
		return false
	}
	mac, err := Sign(h.algorithm, key, base)
	if err != nil {
		return false
	}
	h.reqMAC = mac
	return true
}

// GetReqMAC returns the computed request MAC, or "" if Finalize hasn't run.
func (h *Hawk) GetReqMAC() string { return h.reqMAC }

// GetReqHash returns the computed request payload hash, or "" if Validate
// hasn't run.
func (h *Hawk) GetReqHash() string { return h.reqHash }

// GetAuthorization returns the Authorization header value for credential id
// uid. It returns "" if Finalize has not been called.
func (h *Hawk) GetAuthorization(uid string) string {
	if h.reqMAC == "" {
		return ""
	}
	return CreateAuthorizationHeader(uid, AuthFields{
		ID:    uid,
		MAC:   h.reqMAC,
		Hash:  h.reqHash,
		Nonce: h.nonce,
		App:   h.reqApp,
		Dlg:   h.reqDlg,
		Ext:   h.reqExt,
		TS:    h.timestamp,
	})
}

// Client creates HTTP requests that are automatically set up for Hawk
// authentication.
type Client struct {
	uid       string
	key       []byte
	algorithm Algorithm

	// NonceLength is the number of random bytes drawn per nonce; <= 0 uses
	// MaxNonceBytes.
	NonceLength int
	// Offset corrects for a known server clock skew: ts is computed as
	// time.Now().Unix() + Offset.
	Offset int64
}

// NewClient creates a new Hawk client.
func NewClient(uid string, key []byte, algorithm Algorithm, nonceLength int) Client {
	return Client{uid: uid, key: key, algorithm: algorithm, NonceLength: nonceLength}
}

// NewRequest creates a new HTTP request with a preset Content-Type header and
// a Hawk Authorization header computed over method, url, and body.
func (c *Client) NewRequest(method string, rawurl string, body io.Reader, contentType string, ext string) (*http.Request, error) {
	req, err := http.NewRequest(method, rawurl, body)
	if err != nil {
		return req, err
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse URL %q: %v", ErrParse, rawurl, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrParse, u.Scheme)
	}

	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	var content []byte
	if body != nil {
		content, _ = io.ReadAll(body)
	}

	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	nonce, err := NewNonceN(c.NonceLength)
	if err != nil {
		return nil, err
	}

	hd := Details{
		Algorithm:   c.algorithm,
		Host:        u.Hostname(),
		Port:        port,
		URI:         path,
		ContentType: contentType,
		Content:     content,
		Method:      method,
		Timestamp:   time.Now().Unix() + c.Offset,
		Nonce:       nonce,
		Ext:         ext,
	}
	h, err := hd.Create()
	if err != nil {
		return nil, err
	}
	h.Validate(DefaultPayloadHasher(c.algorithm))
	h.Finalize(c.key)

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", h.GetAuthorization(c.uid))
	return req, nil
}

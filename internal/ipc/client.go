package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func call[Resp any](c *Client, method string, req any) (*Resp, error) {
	var resp Resp
	if err := c.client.Call(ServiceName+"."+method, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Start requests the daemon to start sampling.
func (c *Client) Start() (*StartResponse, error) {
	return call[StartResponse](c, "Start", StartRequest{})
}

// Stop requests the daemon to stop sampling.
func (c *Client) Stop() (*StopResponse, error) {
	return call[StopResponse](c, "Stop", StopRequest{})
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	return call[StatusResponse](c, "Status", StatusRequest{})
}

// LogTail returns log lines from the daemon.
func (c *Client) LogTail(req LogTailRequest) (*LogTailResponse, error) {
	return call[LogTailResponse](c, "LogTail", req)
}

// RecordList returns every record.
func (c *Client) RecordList() (*RecordListResponse, error) {
	return call[RecordListResponse](c, "RecordList", RecordListRequest{})
}

// RecordGet returns the record with the exact title.
func (c *Client) RecordGet(title string) (*RecordGetResponse, error) {
	return call[RecordGetResponse](c, "RecordGet", RecordGetRequest{Title: title})
}

// Summary returns aggregate counts.
func (c *Client) Summary() (*SummaryResponse, error) {
	return call[SummaryResponse](c, "Summary", SummaryRequest{})
}

// RecordProgress credits watch time to a title.
func (c *Client) RecordProgress(req RecordProgressRequest) (*RecordProgressResponse, error) {
	return call[RecordProgressResponse](c, "RecordProgress", req)
}

// Finish marks a record finished.
func (c *Client) Finish(title string) (*FinishResponse, error) {
	return call[FinishResponse](c, "Finish", FinishRequest{Title: title})
}

// Delete removes a record.
func (c *Client) Delete(title string) (*DeleteResponse, error) {
	return call[DeleteResponse](c, "Delete", DeleteRequest{Title: title})
}

// SaveManual overwrites a record's episode and resume position.
func (c *Client) SaveManual(title, episode, resume string) (*SaveManualResponse, error) {
	req := SaveManualRequest{Title: title, Episode: episode, ResumePosition: resume}
	return call[SaveManualResponse](c, "SaveManual", req)
}

// Blacklist returns the keyword list.
func (c *Client) Blacklist() (*BlacklistResponse, error) {
	return call[BlacklistResponse](c, "Blacklist", BlacklistRequest{})
}

// BlacklistAdd appends a keyword.
func (c *Client) BlacklistAdd(keyword string) (*BlacklistUpdateResponse, error) {
	return call[BlacklistUpdateResponse](c, "BlacklistAdd", BlacklistUpdateRequest{Keyword: keyword})
}

// BlacklistRemove drops a keyword.
func (c *Client) BlacklistRemove(keyword string) (*BlacklistUpdateResponse, error) {
	return call[BlacklistUpdateResponse](c, "BlacklistRemove", BlacklistUpdateRequest{Keyword: keyword})
}

// BlacklistCheck reports whether a raw window title is blacklisted.
func (c *Client) BlacklistCheck(title string) (*BlacklistCheckResponse, error) {
	return call[BlacklistCheckResponse](c, "BlacklistCheck", BlacklistCheckRequest{Title: title})
}

// ToggleProgram flips the program-active switch.
func (c *Client) ToggleProgram() (*ToggleResponse, error) {
	return call[ToggleResponse](c, "ToggleProgram", ToggleRequest{})
}

// ToggleTracking flips the auto-tracking switch.
func (c *Client) ToggleTracking() (*ToggleResponse, error) {
	return call[ToggleResponse](c, "ToggleTracking", ToggleRequest{})
}

// Language returns the display language, setting it first when tag is non-empty.
func (c *Client) Language(tag string) (*LanguageResponse, error) {
	return call[LanguageResponse](c, "Language", LanguageRequest{Tag: tag})
}

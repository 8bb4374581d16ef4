package module

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"yqhp/pay-engine/pkg/types"
)

const defaultRemoteTimeout = 30 * time.Second

var (
	// 全局共享的 FastHTTP 客户端，所有远程模块共享连接池
	globalClient     *fasthttp.Client
	globalClientOnce sync.Once
)

func sharedClient() *fasthttp.Client {
	globalClientOnce.Do(func() {
		globalClient = &fasthttp.Client{
			MaxConnsPerHost:     256,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         defaultRemoteTimeout,
			WriteTimeout:        defaultRemoteTimeout,
		}
	})
	return globalClient
}

// Remote is a calculation module backed by an HTTP collaborator. The stage
// request is posted as JSON and the typed stage output is decoded from the
// reply. Network failures and 5xx replies map to transient errors; 4xx
// replies and malformed bodies map to data errors.
type Remote struct {
	stage   string
	url     string
	timeout time.Duration
	client  *fasthttp.Client
	decode  func([]byte) (types.StageOutput, error)
}

// NewRemote 创建一个指向外部 HTTP 服务的计算模块
func NewRemote(stage, url string, timeout time.Duration, decode func([]byte) (types.StageOutput, error)) *Remote {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &Remote{
		stage:   stage,
		url:     url,
		timeout: timeout,
		client:  sharedClient(),
		decode:  decode,
	}
}

// Stage returns the stage this remote module serves.
func (r *Remote) Stage() string {
	return r.stage
}

// Calculate posts the request to the remote service and decodes the reply.
func (r *Remote) Calculate(ctx context.Context, req *Request) (types.StageOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewTransientError(r.stage, "context cancelled before request", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, NewDataError(r.stage, "failed to encode stage request", err)
	}

	httpReq := fasthttp.AcquireRequest()
	httpResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(httpReq)
	defer fasthttp.ReleaseResponse(httpResp)

	httpReq.SetRequestURI(r.url)
	httpReq.Header.SetMethod(fasthttp.MethodPost)
	httpReq.Header.SetContentType("application/json")
	httpReq.SetBody(body)

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := r.client.DoTimeout(httpReq, httpResp, timeout); err != nil {
		return nil, NewTransientError(r.stage, fmt.Sprintf("request to %s failed", r.url), err)
	}

	status := httpResp.StatusCode()
	switch {
	case status >= 500:
		return nil, NewTransientError(r.stage, fmt.Sprintf("remote module returned %d", status), nil)
	case status >= 400:
		return nil, NewDataError(r.stage, fmt.Sprintf("remote module rejected request with %d", status), nil)
	}

	out, err := r.decode(httpResp.Body())
	if err != nil {
		return nil, NewDataError(r.stage, "failed to decode stage response", err)
	}
	return out, nil
}

// JSONDecoder returns a decode function for a concrete stage output type.
func JSONDecoder[T any, PT interface {
	*T
	types.StageOutput
}]() func([]byte) (types.StageOutput, error) {
	return func(data []byte) (types.StageOutput, error) {
		out := PT(new(T))
		if err := json.Unmarshal(data, out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

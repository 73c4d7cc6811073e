package net

import (
	"net/http"
	"time"
)

// Dispatcher 网络调度器 (通用组件)
// 业务服务只依赖此接口，测试中以函数桩替换
type Dispatcher interface {
	// Send 发送 HTTP 请求
	// 请求需携带 context (由 BuildEbayRequest 注入)，超时与取消由 ctx 和 Client 共同约束
	Send(req *http.Request) (*http.Response, error)
}

// httpDispatcher 是 Dispatcher 接口的具体实现
// 注意：它是私有的，外部只能通过 NewDispatcher 获取接口
type httpDispatcher struct {
	client *http.Client
}

var _ Dispatcher = (*httpDispatcher)(nil)

// NewDispatcher 创建默认调度器
// 统一 30 秒业务超时，连接复用交给标准 Transport
func NewDispatcher() Dispatcher {
	return &httpDispatcher{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: 30 * time.Second,
		},
	}
}

// Send 发送 HTTP 请求
// 不做重试：发布链路的每一步失败都要原样暴露给调用方
func (d *httpDispatcher) Send(req *http.Request) (*http.Response, error) {
	return d.client.Do(req)
}

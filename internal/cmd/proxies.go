package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/urs/internal/config"
	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/network"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Check that each proxy can reach Reddit."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Target URL." default:"https://www.reddit.com/robots.txt"`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

type proxyResult struct {
	proxy   string
	status  string
	latency time.Duration
	err     error
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies(ctx.Proxies)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	results := make([]proxyResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, p.check(ctx, proxy))
	}
	return writeProxyResults(ctx, results)
}

func (p *ProxyCheckCmd) check(ctx *Context, proxy string) proxyResult {
	result := proxyResult{proxy: proxy, status: "error"}
	rotator, err := network.NewRotator([]string{proxy}, 5*time.Minute)
	if err != nil {
		result.err = err
		return result
	}
	client, err := network.NewClient(rotator, ctx.Config.UserAgent, p.Timeout)
	if err != nil {
		result.err = err
		return result
	}
	req, err := fhttp.NewRequest(fhttp.MethodGet, p.Target, nil)
	if err != nil {
		result.err = err
		return result
	}

	start := time.Now()
	resp, err := doWithTimeout(ctx.context(), client, req, time.Duration(p.Timeout)*time.Second)
	if err != nil {
		result.err = err
		return result
	}
	_ = resp.Body.Close()

	result.latency = time.Since(start)
	result.status = strconv.Itoa(resp.StatusCode)
	return result
}

func doWithTimeout(parent context.Context, client *network.Client, req *fhttp.Request, timeout time.Duration) (*fhttp.Response, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	return client.Do(req.WithContext(ctx))
}

func writeProxyResults(ctx *Context, results []proxyResult) error {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		errText := ""
		if res.err != nil {
			errText = res.err.Error()
		}
		rows = append(rows, []string{res.proxy, res.status, strconv.FormatInt(res.latency.Milliseconds(), 10), errText})
	}
	return export.WriteTable(ctx.Out, []string{"proxy", "status", "latency_ms", "error"}, rows, ctx.UI.ColorEnabled)
}

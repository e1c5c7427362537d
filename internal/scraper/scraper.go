// Package scraper 抓取搜索结果页并提取摘要区域的可见文本
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// DefaultSearchURL 搜索页地址
	DefaultSearchURL = "https://www.google.com/search"
	// DefaultResultClass 摘要区域的 class
	DefaultResultClass = "y6Uyqe"
	// DefaultUserAgent 模拟桌面浏览器
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client 搜索结果抓取客户端
type Client struct {
	searchURL   string
	resultClass string
	userAgent   string
	client      *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithSearchURL 设置搜索页地址
func WithSearchURL(u string) Option {
	return func(c *Client) { c.searchURL = u }
}

// WithResultClass 设置摘要区域的 class
func WithResultClass(class string) Option {
	return func(c *Client) { c.resultClass = class }
}

// WithUserAgent 设置 User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient 设置 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// New 创建抓取客户端
func New(opts ...Option) *Client {
	c := &Client{
		searchURL:   DefaultSearchURL,
		resultClass: DefaultResultClass,
		userAgent:   DefaultUserAgent,
		client:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchResultText 搜索 query 并返回摘要区域内所有非空文本
// 页面中没有摘要区域时返回空列表
func (c *Client) FetchResultText(ctx context.Context, query string) ([]string, error) {
	u := c.searchURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	return ExtractText(resp.Body, c.resultClass)
}

// ExtractText 解析 HTML，返回第一个 class 匹配元素下所有文本节点（去除首尾空白、忽略空串）
func ExtractText(r io.Reader, class string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	texts := []string{}
	sel := doc.Find("." + class).First()
	if sel.Length() == 0 {
		return texts, nil
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				if text := strings.TrimSpace(child.Data); text != "" {
					texts = append(texts, text)
				}
				continue
			}
			walk(child)
		}
	}
	walk(sel.Nodes[0])

	return texts, nil
}

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HttpGet 发送GET请求
func HttpGet(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// OrcidTokenResponse ORCID令牌接口响应
type OrcidTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	Name         string `json:"name"`
	Orcid        string `json:"orcid"`
}

// ParseOrcidTokenResponse 解析ORCID令牌接口返回的JSON
func ParseOrcidTokenResponse(body string) (*OrcidTokenResponse, error) {
	var token OrcidTokenResponse
	if err := json.Unmarshal([]byte(body), &token); err != nil {
		return nil, fmt.Errorf("解析ORCID响应失败: %v, 原始数据: %s", err, body)
	}
	if token.Orcid == "" {
		return nil, fmt.Errorf("ORCID iD 为空: %s", body)
	}
	return &token, nil
}

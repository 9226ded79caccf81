package user

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"journal/global"
	"journal/models"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/service/redis_ser"
	"journal/utils"

	"github.com/avast/retry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrcidLoginURL struct {
	URL string `json:"url"`
}

// GetOrcidLoginURL 获取ORCID登录URL
func (u *User) GetOrcidLoginURL(c *gin.Context) {
	loginURL := fmt.Sprintf("https://orcid.org/oauth/authorize?"+
		"client_id=%s&"+
		"response_type=code&"+
		"scope=/authenticate&"+
		"redirect_uri=%s",
		global.Config.Orcid.ClientID,
		url.QueryEscape(global.Config.Orcid.RedirectURI),
	)

	res.Success(c, OrcidLoginURL{
		URL: loginURL,
	})
}

// OrcidLoginCallback ORCID登录回调处理
func (u *User) OrcidLoginCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		res.Error(c, res.InvalidParameter, "无效的授权码")
		return
	}

	// 1. 用授权码换取 access_token 和 ORCID iD
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, err := getOrcidToken(ctx, code)
	if err != nil {
		global.Log.Error("获取ORCID token失败", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "ORCID登录失败")
		return
	}

	// 2. 查找或创建用户
	var user models.UserModel
	err = user.FindByOrcidID(token.Orcid)
	if err != nil {
		fullName := token.Name
		if fullName == "" {
			fullName = token.Orcid
		}

		// 首次ORCID登录生成随机初始密码
		pwd, err := utils.GenerateID()
		if err != nil {
			global.Log.Error("utils.GenerateID() failed", zap.String("error", err.Error()))
			res.Error(c, res.ServerError, "用户创建失败")
			return
		}

		user = models.UserModel{
			Account:  token.Orcid,
			FullName: fullName,
			OrcidID:  token.Orcid,
			Role:     ctypes.RoleAuthor,
			Password: strconv.FormatInt(pwd, 10),
		}

		if err := user.Create(c.ClientIP()); err != nil {
			global.Log.Error("创建用户失败", zap.String("error", err.Error()))
			res.Error(c, res.ServerError, "用户创建失败")
			return
		}
	}

	// 3. 生成登录token
	userPayload := utils.PayLoad{
		Account: user.Account,
		Role:    user.Role,
		UserID:  user.ID,
	}

	accessToken, err := utils.GenerateAccessToken(userPayload)
	if err != nil {
		global.Log.Error("生成access token失败", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "登录失败")
		return
	}

	// 4. 更新用户token并返回
	if err := user.UpdateToken(accessToken); err != nil {
		global.Log.Error("更新用户token失败", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "登录失败")
		return
	}

	c.Request.Header.Set("Authorization", "Bearer "+accessToken)

	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		global.Log.Error("utils.GenerateRefreshToken() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "生成refresh token失败")
		return
	}

	err = redis_ser.SetRefreshToken(user.ID, refreshToken)
	if err != nil {
		global.Log.Error("redis_ser.SetRefreshToken() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "设置 refresh token 到 redis 失败")
		return
	}

	global.Log.Info("用户ORCID登录成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, accessToken)
}

// getOrcidToken 用授权码换取ORCID令牌，带重试
func getOrcidToken(ctx context.Context, code string) (*utils.OrcidTokenResponse, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	form := url.Values{}
	form.Set("client_id", global.Config.Orcid.ClientID)
	form.Set("client_secret", global.Config.Orcid.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", global.Config.Orcid.RedirectURI)

	var token *utils.OrcidTokenResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, "POST",
				"https://orcid.org/oauth/token",
				strings.NewReader(form.Encode()))
			if err != nil {
				return fmt.Errorf("创建请求失败: %v", err)
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Accept", "application/json")

			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("发送请求失败: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("请求失败，状态码: %d", resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("读取响应失败: %v", err)
			}

			token, err = utils.ParseOrcidTokenResponse(string(body))
			if err != nil {
				return err
			}

			return nil
		},
		retry.Attempts(3),
		retry.Delay(1*time.Second),
		retry.OnRetry(func(n uint, err error) {
			global.Log.Warn("重试获取ORCID token",
				zap.Uint("attempt", n+1),
				zap.String("error", err.Error()))
		}),
	)

	return token, err
}

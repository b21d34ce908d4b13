package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateExpirationTime = 10 * time.Minute

// StateClaims 授权回调 state 里携带的信息
type StateClaims struct {
	Nonce    string `json:"nonce"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// SignState 生成带签名的 OAuth state，防回调伪造
func SignState(signKey, provider string) (string, error) {
	claims := &StateClaims{
		Nonce:    uuid.NewString(),
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateExpirationTime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "Beacon",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("签名 state 失败: %w", err)
	}
	return signed, nil
}

// ValidateState 验证回调携带的 state 并解析出 Claims
func ValidateState(signKey, state string) (*StateClaims, error) {
	claims := &StateClaims{}

	token, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
		}
		return []byte(signKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("state 解析失败: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("state 无效或已过期")
	}
	return claims, nil
}

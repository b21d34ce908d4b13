package security

import (
	"strings"
	"testing"
)

func TestTokenCipherRoundTrip(t *testing.T) {
	cipher, err := NewTokenCipher("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	plaintext := "AQVv8examp1e-access-token"

	encrypted, err := cipher.Encrypt(plaintext)
	if err != nil {
		t.Fatal(err)
	}
	if encrypted == plaintext || strings.Contains(encrypted, plaintext) {
		t.Error("密文不应包含明文")
	}

	decrypted, err := cipher.Decrypt(encrypted)
	if err != nil {
		t.Fatal(err)
	}
	if decrypted != plaintext {
		t.Errorf("解密结果 = %q", decrypted)
	}
}

func TestTokenCipherRejectsTampering(t *testing.T) {
	cipher, _ := NewTokenCipher("test-secret")
	encrypted, err := cipher.Encrypt("token")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cipher.Decrypt("AAAA" + encrypted[4:]); err == nil {
		t.Error("篡改后的密文应解密失败")
	}
	if _, err := cipher.Decrypt("not base64!!"); err == nil {
		t.Error("非法编码应解密失败")
	}
}

func TestTokenCipherRequiresKey(t *testing.T) {
	if _, err := NewTokenCipher(""); err == nil {
		t.Error("空密钥应报错")
	}
}

func TestStateSignAndValidate(t *testing.T) {
	state, err := SignState("sign-key", "linkedin")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ValidateState("sign-key", state)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Provider != "linkedin" {
		t.Errorf("provider = %s", claims.Provider)
	}
	if claims.Nonce == "" {
		t.Error("nonce 不能为空")
	}
}

func TestStateRejectsWrongKey(t *testing.T) {
	state, _ := SignState("sign-key", "linkedin")
	if _, err := ValidateState("other-key", state); err == nil {
		t.Error("错误密钥应验证失败")
	}
	if _, err := ValidateState("sign-key", "garbage.state.value"); err == nil {
		t.Error("伪造 state 应验证失败")
	}
}

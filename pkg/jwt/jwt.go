package jwt

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	jwtv4 "github.com/golang-jwt/jwt/v4"
	hertzjwt "github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"

	"github.com/Joydas46/VideoTube-Twitter/config"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
)

const identityKey = "user_id"

// Principal is the authenticated caller. Handlers receive it explicitly; a
// missing principal is the (Principal{}, false) variant, never a nil chain.
type Principal struct {
	UserID int64
}

// TokenManager issues and checks the double-token pair. The short-lived
// access token rides the hertz-contrib/jwt middleware machinery; the refresh
// token is a plain signed JWT because its value must round-trip through the
// users table for rotation.
type TokenManager struct {
	accessMW      *hertzjwt.HertzJWTMiddleware
	refreshSecret []byte
	refreshExpire time.Duration
	issuer        string
}

func New(conf config.Jwt) (*TokenManager, error) {
	accessMW, err := hertzjwt.New(&hertzjwt.HertzJWTMiddleware{
		Realm:       conf.Issuer,
		Key:         []byte(conf.AccessSecret),
		Timeout:     time.Duration(conf.AccessExpire) * time.Minute,
		IdentityKey: identityKey,
		PayloadFunc: func(data interface{}) hertzjwt.MapClaims {
			// snowflake ids overflow float64, so the claim is a string
			if p, ok := data.(Principal); ok {
				return hertzjwt.MapClaims{identityKey: strconv.FormatInt(p.UserID, 10)}
			}
			return hertzjwt.MapClaims{}
		},
	})
	if err != nil {
		return nil, errors.WithMessage(err, "init access token middleware")
	}

	return &TokenManager{
		accessMW:      accessMW,
		refreshSecret: []byte(conf.RefreshSecret),
		refreshExpire: time.Duration(conf.RefreshExpire) * time.Hour,
		issuer:        conf.Issuer,
	}, nil
}

func (t *TokenManager) GenerateAccessToken(userID int64) (string, time.Time, error) {
	token, expire, err := t.accessMW.TokenGenerator(Principal{UserID: userID})
	if err != nil {
		return "", time.Time{}, errors.WithMessage(err, "generate access token")
	}
	return token, expire, nil
}

func (t *TokenManager) GenerateRefreshToken(userID int64) (string, error) {
	claims := jwtv4.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    t.issuer,
		IssuedAt:  jwtv4.NewNumericDate(time.Now()),
		ExpiresAt: jwtv4.NewNumericDate(time.Now().Add(t.refreshExpire)),
	}
	token, err := jwtv4.NewWithClaims(jwtv4.SigningMethodHS256, claims).SignedString(t.refreshSecret)
	if err != nil {
		return "", errors.WithMessage(err, "sign refresh token")
	}
	return token, nil
}

// VerifyRefreshToken checks signature and expiry and returns the subject id.
// The caller still has to compare the raw value against the stored one.
func (t *TokenManager) VerifyRefreshToken(tokenString string) (int64, error) {
	token, err := jwtv4.ParseWithClaims(tokenString, &jwtv4.RegisteredClaims{}, func(tk *jwtv4.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwtv4.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errno.UnauthenticatedErr.WithMessage("invalid refresh token")
	}
	claims, ok := token.Claims.(*jwtv4.RegisteredClaims)
	if !ok {
		return 0, errno.UnauthenticatedErr.WithMessage("invalid refresh token claims")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errno.UnauthenticatedErr.WithMessage("invalid refresh token subject")
	}
	return userID, nil
}

// ExtractPrincipal reads the bearer access token off the request. Expiry is
// checked here because GetClaimsFromJWT only validates the signature.
func (t *TokenManager) ExtractPrincipal(ctx context.Context, c *app.RequestContext) (Principal, bool) {
	claims, err := t.accessMW.GetClaimsFromJWT(ctx, c)
	if err != nil {
		return Principal{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok || int64(exp) < time.Now().Unix() {
		return Principal{}, false
	}
	raw, ok := claims[identityKey].(string)
	if !ok {
		return Principal{}, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return Principal{}, false
	}
	return Principal{UserID: userID}, true
}

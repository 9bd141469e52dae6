package auth

import "context"

// AuthService issue admin token cho fixed credential pair
type AuthService interface {
	Login(ctx context.Context, req LoginReq) (*LoginResp, error)
}

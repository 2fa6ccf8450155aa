package handler

import "github.com/baseapi/user-api/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		BornDate:  u.BornDate,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Role != nil {
		resp.Role = &roleResponse{
			ID:          u.Role.ID,
			Name:        u.Role.Name,
			Description: u.Role.Description,
		}
	}
	if u.GovernmentID != nil {
		resp.GovernmentID = &governmentIDResponse{
			Type:   u.GovernmentID.Type,
			Number: u.GovernmentID.Number,
		}
	}
	return resp
}

func toUserSummary(u *domain.User) userSummary {
	return userSummary{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.RoleName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toGovernmentID(req *governmentIDRequest) *domain.GovernmentID {
	if req == nil {
		return nil
	}
	return &domain.GovernmentID{Type: req.Type, Number: req.Number}
}

package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const CategoryServiceName = "termas.hotel.v1.CategoryService"

type Category struct {
	Id             string    `json:"id"`
	RegisterTypeId int32     `json:"register_type_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Color          string    `json:"color,omitempty"`
	SortOrder      int32     `json:"sort_order"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CategoryInput struct {
	RegisterTypeId int32  `json:"register_type_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Color          string `json:"color"`
	SortOrder      int32  `json:"sort_order"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

type CreateCategoryRequest struct {
	Category *CategoryInput `json:"category"`
}

type GetCategoryRequest struct {
	Id string `json:"id"`
}

type ListCategoriesRequest struct {
	RegisterTypeId int32 `json:"register_type_id"`
	ActiveOnly     bool  `json:"active_only"`
	Page           int32 `json:"page"`
	PageSize       int32 `json:"page_size"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
	Total      int32       `json:"total"`
}

type UpdateCategoryRequest struct {
	Id       string         `json:"id"`
	Category *CategoryInput `json:"category"`
}

type DeleteCategoryRequest struct {
	Id string `json:"id"`
}

type CategoryResponse struct {
	Category *Category `json:"category"`
}

type CategoryServiceServer interface {
	CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error)
	GetCategory(context.Context, *GetCategoryRequest) (*CategoryResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	UpdateCategory(context.Context, *UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(context.Context, *DeleteCategoryRequest) (*emptypb.Empty, error)
}

var CategoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CategoryServiceName,
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(CategoryServiceName, "CreateCategory", CategoryServiceServer.CreateCategory),
		rpc.Unary(CategoryServiceName, "GetCategory", CategoryServiceServer.GetCategory),
		rpc.Unary(CategoryServiceName, "ListCategories", CategoryServiceServer.ListCategories),
		rpc.Unary(CategoryServiceName, "UpdateCategory", CategoryServiceServer.UpdateCategory),
		rpc.Unary(CategoryServiceName, "DeleteCategory", CategoryServiceServer.DeleteCategory),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryService_ServiceDesc, srv)
}

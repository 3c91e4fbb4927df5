package api

import (
	"context"
	"net/url"

	"github.com/dimitrije/eduadmin/internal/request"
	"github.com/dimitrije/eduadmin/pkg/dto"
)

const (
	pathCollectionContent = "/collection/content"
	pathCollectionAdd     = "/collection-manage/add"
	pathCollectionDelete  = "/collection-manage/delete"
	pathCollectionEdit    = "/collection-manage/edit"
	pathCollectionPopular = "/collection-manage/computePopularity"
)

// CollectionAPI wraps the collection management endpoints. Every method
// issues one request and returns the transport's result and error as is.
type CollectionAPI struct {
	client request.Requester
}

func NewCollectionAPI(client request.Requester) *CollectionAPI {
	return &CollectionAPI{client: client}
}

// GetCollectionContent lists the direct children of a collection in the
// given order.
func (a *CollectionAPI) GetCollectionContent(ctx context.Context, collectionID string, rankRule dto.CollectionRankRule) ([]dto.CollectionContentVo, error) {
	params := url.Values{}
	params.Set("collectionId", collectionID)
	params.Set("collectionRankRule", string(rankRule))

	var contents []dto.CollectionContentVo
	if err := a.client.Get(ctx, pathCollectionContent, params, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// InsertCollection creates a sub-collection under parentCollectionID.
func (a *CollectionAPI) InsertCollection(ctx context.Context, collectionName, parentCollectionID string) (*dto.FolderCollectionContentVo, error) {
	params := url.Values{}
	params.Set("collectionName", collectionName)
	params.Set("parentCollectionId", parentCollectionID)

	var folder *dto.FolderCollectionContentVo
	if err := a.client.Post(ctx, pathCollectionAdd, nil, params, &folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (a *CollectionAPI) DeleteCollection(ctx context.Context, collectionID string) error {
	params := url.Values{}
	params.Set("collectionId", collectionID)
	return a.client.Post(ctx, pathCollectionDelete, nil, params, nil)
}

func (a *CollectionAPI) EditCollection(ctx context.Context, collectionName, collectionID string) error {
	params := url.Values{}
	params.Set("collectionName", collectionName)
	params.Set("collectionId", collectionID)
	return a.client.Post(ctx, pathCollectionEdit, nil, params, nil)
}

// ComputePopularity starts the server-side popularity job. The call
// returns once the job is accepted, not when it finishes.
func (a *CollectionAPI) ComputePopularity(ctx context.Context) error {
	return a.client.Post(ctx, pathCollectionPopular, nil, nil, nil)
}

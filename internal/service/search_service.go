package service

import (
	"digraph-be/internal/dto"
	"digraph-be/pkg/editorstate"
	"digraph-be/pkg/searchquery"
)

// ISearchService exposes the search box transforms. Both are pure.
type ISearchService interface {
	Path(req *dto.SearchPathRequest) *dto.SearchPathResponse
	Seed(req *dto.SearchSeedRequest) editorstate.ContentState
}

type searchService struct {
	keyGen editorstate.KeyGenerator
}

func NewSearchService(keyGen editorstate.KeyGenerator) ISearchService {
	if keyGen == nil {
		keyGen = editorstate.DefaultKeyGen
	}
	return &searchService{keyGen: keyGen}
}

// Path resolves the submitted search. Edited content, when sent, takes
// precedence over raw terms.
func (s *searchService) Path(req *dto.SearchPathRequest) *dto.SearchPathResponse {
	var result searchquery.PathResult
	if req.Content != nil {
		result = searchquery.BuildPathFromContent(*req.Content, req.QueryInfo)
	} else {
		result = searchquery.Resolve(req.SearchTerms, req.QueryInfo, req.NewQueryInfo)
	}
	return &dto.SearchPathResponse{
		Path:          result.Path(),
		ParentTopicId: result.ParentTopicID,
		ResidualQuery: result.ResidualQuery,
	}
}

func (s *searchService) Seed(req *dto.SearchSeedRequest) editorstate.ContentState {
	return searchquery.Flatten(req.QueryInfo, s.keyGen)
}

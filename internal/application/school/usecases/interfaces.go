package usecases

import "context"

type CreateSchoolExecutor interface {
	Execute(ctx context.Context, cmd CreateSchoolCommand) (*SchoolView, error)
}

type UpdateSchoolExecutor interface {
	Execute(ctx context.Context, cmd UpdateSchoolCommand) (*SchoolView, error)
}

type DeleteSchoolExecutor interface {
	Execute(ctx context.Context, cmd DeleteSchoolCommand) error
}

type GetSchoolExecutor interface {
	Execute(ctx context.Context, query GetSchoolQuery) (*SchoolView, error)
}

type ListSchoolsExecutor interface {
	Execute(ctx context.Context, query ListSchoolsQuery) (*ListSchoolsResult, error)
}

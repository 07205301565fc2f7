package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ExportRepository --dir ../domain/roster --output domain/roster --outpkg rostermock --filename export_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Loader --dir ../domain/player --output domain/player --outpkg playermock --filename loader_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Generator --dir ../domain/explanation --output domain/explanation --outpkg explanationmock --filename generator_mock.go

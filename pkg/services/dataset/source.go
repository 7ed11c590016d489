package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/boxoffice-atlas/pkg/adapters"
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/models/store"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb"
	"github.com/de-tools/boxoffice-atlas/pkg/store/duckdb/revenue"
	"github.com/rs/zerolog"
)

const (
	KindCSV    = "csv"
	KindDuckDB = "duckdb"

	s3Scheme = "s3://"
)

// Source produces the full dataset. Implementations are read once per process via Cache.
type Source interface {
	Load(ctx context.Context) ([]domain.Record, error)
}

type Settings struct {
	Kind       string
	Path       string // local path or s3://bucket/key for csv
	DuckDBPath string
}

type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]domain.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, s.Path)
		}
		return nil, fmt.Errorf("open dataset %s: %w", s.Path, err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", s.Path).Int("records", len(records)).Msg("dataset parsed")
	return records, nil
}

type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

func (s S3Source) Load(ctx context.Context) ([]domain.Record, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s: %v", ErrMissingFile, s.Bucket, s.Key, err)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	records, err := ParseCSV(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return records, nil
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket) || errors.As(err, &notFound)
}

// ParseS3Location splits s3://bucket/key.
func ParseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location needs bucket and key: %q", location)
	}
	return bucket, key, nil
}

type RowLister interface {
	List(ctx context.Context) ([]store.RevenueRow, error)
}

type StoreSource struct {
	Store RowLister
}

func (s StoreSource) Load(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revenue rows: %w", err)
	}
	return adapters.MapStoreRevenueRowsToDomain(rows), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewSource builds the configured Source. The returned closer releases whatever
// the source holds open and must be closed by the caller.
func NewSource(ctx context.Context, settings Settings) (Source, io.Closer, error) {
	switch settings.Kind {
	case "", KindCSV:
		if settings.Path == "" {
			return nil, nil, fmt.Errorf("dataset path is required")
		}
		if !strings.HasPrefix(settings.Path, s3Scheme) {
			return FileSource{Path: settings.Path}, nopCloser{}, nil
		}
		bucket, key, err := ParseS3Location(settings.Path)
		if err != nil {
			return nil, nil, err
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		return S3Source{Client: s3.NewFromConfig(awsCfg), Bucket: bucket, Key: key}, nopCloser{}, nil
	case KindDuckDB:
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.DuckDBPath})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		revenueStore, err := revenue.NewStore(db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to create revenue store: %w", err)
		}
		return StoreSource{Store: revenueStore}, db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported dataset source %q", settings.Kind)
	}
}

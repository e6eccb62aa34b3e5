package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/facundo-gs/busqueda-api/dto"
	"github.com/facundo-gs/busqueda-api/models"
)

// SearchFilter describes one retrieval against the text index. The zero value
// means "all active facts". Censored documents are excluded unconditionally.
type SearchFilter struct {
	Query        string
	Tags         []string
	TagsMatchAll bool
	Coleccion    string
}

// SearchPage is paging plus ordering for a retrieval.
type SearchPage struct {
	Page          int // 0-based
	Size          int
	SortBy        string // dto.SortRelevancia | SortFecha | SortTitulo
	SortDirection string // dto.DirAsc | DirDesc
}

// Search runs one filtered, ranked, paginated retrieval and returns the page
// plus the total match count before any title dedup.
func (r *HechoRepository) Search(ctx context.Context, f SearchFilter, p SearchPage) ([]models.HechoIndexado, int64, error) {
	filter := buildFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64(p.Page) * int64(p.Size)).
		SetLimit(int64(p.Size))

	dir := 1
	if p.SortDirection == dto.DirDesc {
		dir = -1
	}

	switch p.SortBy {
	case dto.SortFecha:
		opts.SetSort(bson.D{{Key: "fecha", Value: dir}})
	case dto.SortTitulo:
		opts.SetSort(bson.D{{Key: "titulo", Value: dir}})
	default:
		if f.Query != "" {
			// relevance ranking is delegated to Mongo's text score
			opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
			opts.SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
		} else {
			// relevance without a text query degenerates to recency
			opts.SetSort(bson.D{{Key: "ultima_actualizacion", Value: -1}})
		}
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var hechos []models.HechoIndexado
	if err := cur.All(ctx, &hechos); err != nil {
		return nil, 0, err
	}
	return hechos, total, nil
}

func buildFilter(f SearchFilter) bson.M {
	filter := bson.M{"censurado": false}

	if f.Query != "" {
		filter["$text"] = bson.M{"$search": f.Query}
	}

	if f.Coleccion != "" {
		filter["colecciones"] = f.Coleccion
	}

	if len(f.Tags) > 0 {
		if f.TagsMatchAll {
			// every requested tag must appear in etiquetas or etiquetas_ia
			clauses := make([]bson.M, 0, len(f.Tags))
			for _, tag := range f.Tags {
				clauses = append(clauses, bson.M{"$or": []bson.M{
					{"etiquetas": tag},
					{"etiquetas_ia": tag},
				}})
			}
			filter["$and"] = clauses
		} else {
			filter["$or"] = []bson.M{
				{"etiquetas": bson.M{"$in": f.Tags}},
				{"etiquetas_ia": bson.M{"$in": f.Tags}},
			}
		}
	}

	return filter
}

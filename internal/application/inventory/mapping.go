package inventory

import (
	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		SKU:            a.SKU,
		Nombre:         a.Name,
		Tipo:           a.Type,
		Unidad:         a.Unit,
		StockInicial:   a.InitialStock,
		StockSeguridad: a.SafetyStock,
		LeadTimeDias:   a.LeadTimeDays,
		PrecioVenta:    a.SalePrice,
		UltimoCoste:    a.LastCost,
		Proveedor:      a.Supplier,
		ImagenURL:      a.ImageURL,
		Activo:         a.Active,
		FechaAlta:      a.CreatedOn,
	}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:           m.ID,
		SKU:          m.SKU,
		Tipo:         m.Type,
		Clase:        m.Class(),
		Cantidad:     m.Quantity,
		Motivo:       m.Reason,
		Usuario:      m.User,
		Periodo:      m.Period,
		RefOperacion: m.OperationRef,
		Fecha:        m.CreatedAt,
	}
}

func toInventoryItemResponse(it entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		SKU:                  it.Article.SKU,
		Nombre:               it.Article.Name,
		Tipo:                 it.Article.Type,
		Unidad:               it.Article.Unit,
		Activo:               it.Article.Active,
		StockInicial:         it.Article.InitialStock,
		StockSeguridad:       it.Article.SafetyStock,
		TotalEntradas:        it.TotalIn,
		TotalSalidas:         it.TotalOut,
		TotalSalidasManuales: it.TotalManualOut,
		TotalSalidasCargas:   it.TotalLoadOut,
		TotalRegularizacion:  it.TotalRegularizedIn - it.TotalRegularizedOut,
		StockActual:          it.CurrentStock,
		Situacion:            it.Status,
		PrecioVenta:          it.Article.SalePrice,
		ValorStock:           it.StockValue,
	}
}

func toLoadResponse(l *entity.OperationalLoad) dto.LoadResponse {
	cons := make(map[string]int64, len(l.Consumptions))
	for k, v := range l.Consumptions {
		cons[k] = v
	}
	return dto.LoadResponse{
		RefCarga:   l.RefCarga,
		Fecha:      l.Date.Format("2006-01-02"),
		Equipo:     l.Equipment,
		Matricula:  l.Plate,
		Consumos:   cons,
		Duplicado:  l.Duplicate,
		Modificada: l.Modified,
		UpdatedAt:  l.UpdatedAt,
	}
}

// derefArticles convierte el listado del repositorio en valores para el motor puro.
func derefArticles(in []*entity.Article) []entity.Article {
	out := make([]entity.Article, 0, len(in))
	for _, a := range in {
		out = append(out, *a)
	}
	return out
}

func derefMovements(in []*entity.Movement) []entity.Movement {
	out := make([]entity.Movement, 0, len(in))
	for _, m := range in {
		out = append(out, *m)
	}
	return out
}

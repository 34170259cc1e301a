package entity

import "time"

// Warehouse es un almacén de una sucursal. A lo sumo uno marcado principal;
// el principal es el almacén por defecto de los servicios compuestos.
type Warehouse struct {
	ID            string
	BranchID      string
	Name          string
	Location      string
	ResponsibleID string
	Principal     bool
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

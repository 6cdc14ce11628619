package mapping

import (
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/models"
)

// ToModelOutgoingMovement converts a domain OutgoingMovement to a model OutgoingMovement
func ToModelOutgoingMovement(d domain.OutgoingMovement) models.OutgoingMovement {
	return models.OutgoingMovement(d)
}

// ToDomainOutgoingMovement converts a model OutgoingMovement to a domain OutgoingMovement
func ToDomainOutgoingMovement(m models.OutgoingMovement) domain.OutgoingMovement {
	return domain.OutgoingMovement(m)
}

// ToModelIncomingMovement converts a domain IncomingMovement to a model IncomingMovement
func ToModelIncomingMovement(d domain.IncomingMovement) models.IncomingMovement {
	return models.IncomingMovement(d)
}

// ToDomainIncomingMovement converts a model IncomingMovement to a domain IncomingMovement
func ToDomainIncomingMovement(m models.IncomingMovement) domain.IncomingMovement {
	return domain.IncomingMovement(m)
}

// ToDomainOutgoingMovementSlice converts a slice of model OutgoingMovements to domain
func ToDomainOutgoingMovementSlice(ms []models.OutgoingMovement) []domain.OutgoingMovement {
	ds := make([]domain.OutgoingMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOutgoingMovement(m)
	}
	return ds
}

// ToDomainIncomingMovementSlice converts a slice of model IncomingMovements to domain
func ToDomainIncomingMovementSlice(ms []models.IncomingMovement) []domain.IncomingMovement {
	ds := make([]domain.IncomingMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainIncomingMovement(m)
	}
	return ds
}

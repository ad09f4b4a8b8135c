package services

import (
	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

// rfidLength is the fixed length of the wristband identifiers handed out
// at the entrance desk.
const rfidLength = 10

// RFIDService couples wristbands to tickets. Entrance-desk tooling runs
// with admin credentials, so every operation is admin only.
type RFIDService struct {
	links   repository.RFIDRepo
	tickets repository.TicketRepo
}

func NewRFIDService(links repository.RFIDRepo, tickets repository.TicketRepo) *RFIDService {
	return &RFIDService{links: links, tickets: tickets}
}

func (s *RFIDService) GetAll(principal *models.User) ([]models.RFIDLink, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	return s.links.GetAll()
}

func (s *RFIDService) Get(principal *models.User, rfid string) (*models.RFIDLink, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	return s.links.GetByRFID(rfid)
}

// Link couples a band to a ticket. Only valid tickets can be linked, and
// both the band and the ticket must be unlinked.
func (s *RFIDService) Link(principal *models.User, rfid string, ticketID uint) (*models.RFIDLink, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	if len(rfid) != rfidLength {
		return nil, models.ErrValidation
	}

	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.Valid {
		return nil, models.ErrTicketRequired
	}

	if _, err := s.links.GetByRFID(rfid); err == nil {
		return nil, models.ErrDuplicateRFIDLink
	}
	if _, err := s.links.GetByTicketID(ticketID); err == nil {
		return nil, models.ErrDuplicateRFIDLink
	}

	link := &models.RFIDLink{RFID: rfid, TicketID: ticketID}
	if err := s.links.Create(link); err != nil {
		return nil, err
	}
	return link, nil
}

// Unlink frees the band and returns the link it held, so the desk can see
// which ticket was detached.
func (s *RFIDService) Unlink(principal *models.User, rfid string) (*models.RFIDLink, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	link, err := s.links.GetByRFID(rfid)
	if err != nil {
		return nil, err
	}
	if err := s.links.Delete(link.ID); err != nil {
		return nil, err
	}
	return link, nil
}

package allocation

import (
	"fmt"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// Filter делит комнаты на доступные и отклоненные
// Проверки идут в порядке: время, тип, вместимость; комната попадает только в группу первой проваленной проверки
func Filter(req *domain.BookingRequest, rooms []domain.Room) ([]domain.Room, domain.RejectedRooms) {
	available := make([]domain.Room, 0, len(rooms))
	var rejected domain.RejectedRooms

	for _, room := range rooms {
		if reason, ok := check(req, room); !ok {
			rejected.Add(reason)
			continue
		}
		available = append(available, room)
	}

	return available, rejected
}

// check возвращает причину отказа, если комната не подходит
func check(req *domain.BookingRequest, room domain.Room) (domain.RejectedRoom, bool) {
	if conflict, found := room.FindConflict(req.Day, req.StartTime, req.EndTime); found {
		return domain.RejectedRoom{
			Room:    room,
			Reason:  domain.RejectionTimeConflict,
			Details: describeConflict(conflict),
		}, false
	}

	if !req.RoomType.Accepts(room.Type) {
		return domain.RejectedRoom{
			Room:    room,
			Reason:  domain.RejectionWrongType,
			Details: fmt.Sprintf("room type %s does not match requested %s", room.Type, req.RoomType),
		}, false
	}

	if room.Capacity < req.RequiredCapacity {
		return domain.RejectedRoom{
			Room:   room,
			Reason: domain.RejectionTooSmall,
			Details: fmt.Sprintf("capacity %d is less than required %d (short by %d)",
				room.Capacity, req.RequiredCapacity, req.RequiredCapacity-room.Capacity),
		}, false
	}

	return domain.RejectedRoom{}, true
}

func describeConflict(p domain.OccupancyPeriod) string {
	details := fmt.Sprintf("booked on %s %s-%s", p.Day, p.StartTime, p.EndTime)
	if p.Requester != "" {
		details += " by " + p.Requester
	}
	if p.Department != "" {
		details += " (" + p.Department + ")"
	}
	return details
}

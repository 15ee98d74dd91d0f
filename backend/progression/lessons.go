package progression

// LessonInfo is the slice of a lesson the engine needs.
type LessonInfo struct {
	ID       uint
	XPReward int
}

// CompleteLesson awards the lesson's XP and remembers the lesson ID.
// Completing the same lesson twice is rejected with ErrAlreadyCompleted and
// never double-awards XP.
func (s Snapshot) CompleteLesson(lesson LessonInfo) (Snapshot, []string, error) {
	for _, id := range s.CompletedLessons {
		if id == lesson.ID {
			return s, nil, ErrAlreadyCompleted
		}
	}

	next, unlocked, err := s.ApplyXPGain(lesson.XPReward)
	if err != nil {
		return s, nil, err
	}

	done := make([]uint, len(s.CompletedLessons), len(s.CompletedLessons)+1)
	copy(done, s.CompletedLessons)
	next.CompletedLessons = append(done, lesson.ID)
	return next, unlocked, nil
}

package models

// Topic is one teachable unit of a syllabus with a target completion date.
type Topic struct {
	TopicID      string `json:"topicId"`
	Module       string `json:"module"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	LectureHours int    `json:"lectureHours"`
	TargetDate   Date   `json:"targetDate"`
	IsCompleted  bool   `json:"isCompleted"`
	Position     int    `json:"-"`
}

// Syllabus is the extracted topic list of a course, in teaching order.
type Syllabus struct {
	ID             int64   `json:"id"`
	CourseID       int64   `json:"courseId"`
	SourceDocument string  `json:"sourceDocument,omitempty"`
	Topics         []Topic `json:"topics"`
	Timestamps
}

// FindTopic returns the topic with the given id, if present.
func (s *Syllabus) FindTopic(topicID string) (*Topic, bool) {
	for i := range s.Topics {
		if s.Topics[i].TopicID == topicID {
			return &s.Topics[i], true
		}
	}
	return nil, false
}

// OpenTopics returns the topics not yet completed.
func (s *Syllabus) OpenTopics() []Topic {
	var open []Topic
	for _, t := range s.Topics {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}
	return open
}

// Progress returns completed and total topic counts.
func (s *Syllabus) Progress() (completed, total int) {
	for _, t := range s.Topics {
		if t.IsCompleted {
			completed++
		}
	}
	return completed, len(s.Topics)
}

// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package fixtures

// DefaultDataset devolve a massa de dados padrão do mock.
func DefaultDataset() Dataset {
	return Dataset{
		Users: []User{
			{ID: 1, Name: "김철수", Email: "kim@example.com", Role: "admin",
				Profile: &Profile{Bio: "시니어 개발자", Location: "서울", JoinDate: "2020-01-15"}},
			{ID: 2, Name: "이영희", Email: "lee@example.com", Role: "user",
				Profile: &Profile{Bio: "프론트엔드 개발자", Location: "부산", JoinDate: "2021-03-20"}},
			{ID: 3, Name: "박민수", Email: "park@example.com", Role: "user",
				Profile: &Profile{Bio: "백엔드 개발자", Location: "대구", JoinDate: "2022-07-10"}},
			{ID: 4, Name: "아이유", Email: "iu@example.com", Role: "user",
				Profile: &Profile{Bio: "가수", Location: "서울", JoinDate: "2023-01-01"}},
			{ID: 5, Name: "김아이유", Email: "kimiu@example.com", Role: "admin",
				Profile: &Profile{Bio: "관리자", Location: "서울", JoinDate: "2023-02-01"}},
		},
		Posts: []Post{
			{
				ID:        1,
				Title:     "MSW를 활용한 API Mocking",
				Content:   "MSW는 실제 API 없이도 프론트엔드 개발을 할 수 있게 해주는 도구입니다.",
				AuthorID:  1,
				CreatedAt: "2024-01-15T10:00:00Z",
			},
			{
				ID:        2,
				Title:     "React + TypeScript 개발 팁",
				Content:   "TypeScript를 활용하면 더 안전하고 유지보수하기 좋은 코드를 작성할 수 있습니다.",
				AuthorID:  2,
				CreatedAt: "2024-01-14T15:30:00Z",
			},
			{
				ID:        3,
				Title:     "API 설계 베스트 프랙티스",
				Content:   "일관된 에러 응답 형식은 클라이언트 개발을 훨씬 단순하게 만듭니다.",
				AuthorID:  3,
				CreatedAt: "2024-01-13T09:00:00Z",
			},
		},
		PostPages: map[int][]int{
			1: {1, 2},
			2: {3},
		},
		Events: []Event{
			{
				ID: "1", Title: "팀 회의", Description: "주간 팀 회의",
				StartDate: "2024-01-15", EndDate: "2024-01-15", StartTime: "09:00", EndTime: "10:00",
				Location: "회의실 A", Priority: "high", Category: "회의", NotificationTime: 15,
				Color: "#1976d2", Attendees: []string{"김철수", "이영희", "박민수"}, Notes: "프로젝트 진행상황 공유",
				CreatedAt: "2024-01-10T10:00:00Z", UpdatedAt: "2024-01-10T10:00:00Z",
			},
			{
				ID: "2", Title: "프로젝트 마감", Description: "Q1 프로젝트 마감",
				StartDate: "2024-01-20", EndDate: "2024-01-20", StartTime: "14:00", EndTime: "17:00",
				Location: "사무실", Priority: "high", Category: "업무", NotificationTime: 30,
				Color: "#d32f2f", Attendees: []string{"김철수"}, Notes: "최종 검토 및 제출",
				CreatedAt: "2024-01-12T14:00:00Z", UpdatedAt: "2024-01-12T14:00:00Z",
			},
			{
				ID: "3", Title: "신정", Description: "신정 휴일",
				StartDate: "2024-01-01", EndDate: "2024-01-01", StartTime: "00:00", EndTime: "23:59",
				Priority: "low", Category: "휴일", NotificationTime: 0, IsAllDay: true,
				Color: "#ff9800", Attendees: []string{}, Notes: "공휴일",
				CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z",
			},
		},
		Holidays: []Holiday{
			{ID: "1", Title: "신정", Date: "2024-01-01", Description: "신정", IsHoliday: true},
			{ID: "2", Title: "설날", Date: "2024-02-09", Description: "설날", IsHoliday: true},
			{ID: "3", Title: "삼일절", Date: "2024-03-01", Description: "삼일절", IsHoliday: true},
		},
	}
}

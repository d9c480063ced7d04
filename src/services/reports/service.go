package reports

import (
	"context"
	"sort"

	DB "Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/models"
	"Backend-Parsamooz/src/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// assessmentValues maps the qualitative assessment labels to their numeric
// effect on the final score.
var assessmentValues = map[string]float64{
	"عالی":      2,
	"خوب":       1,
	"متوسط":     0,
	"ضعیف":      -1,
	"بسیار ضعیف": -2,
}

// MonthlyGradeReport builds the per-student monthly report card for a class
// and course: monthly averages, assessment-weighted final scores, and
// tie-aware ranks per month and for the year.
func MonthlyGradeReport(ctx context.Context, schoolCode, classCode, courseCode string) ([]models.StudentGradeReport, error) {
	filter := bson.M{"classCode": classCode, "courseCode": courseCode}
	if schoolCode != "" {
		filter["schoolCode"] = schoolCode
	}

	cursor, err := DB.GradeCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cells []models.GradeCell
	if err = cursor.All(ctx, &cells); err != nil {
		return nil, err
	}

	names, err := studentNames(ctx, classCode)
	if err != nil {
		return nil, err
	}

	reports := BuildReports(cells, names)
	return reports, nil
}

// BuildReports computes the report rows from raw grade cells. Separated from
// the Mongo loading so the scoring rules stay independently checkable.
func BuildReports(cells []models.GradeCell, names map[string]string) []models.StudentGradeReport {
	byStudent := map[string][]models.GradeCell{}
	for _, c := range cells {
		byStudent[c.StudentCode] = append(byStudent[c.StudentCode], c)
	}

	var reports []models.StudentGradeReport
	for code, studentCells := range byStudent {
		reports = append(reports, buildStudentReport(code, names[code], studentCells))
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StudentCode < reports[j].StudentCode
	})

	for month := 1; month <= 12; month++ {
		rankMonth(reports, month)
	}
	rankYear(reports)
	return reports
}

func buildStudentReport(code, name string, cells []models.GradeCell) models.StudentGradeReport {
	report := models.StudentGradeReport{
		StudentCode:   code,
		StudentName:   name,
		MonthlyGrades: map[int]models.MonthlyGrade{},
	}

	gradesByMonth := map[int][]float64{}
	assessByMonth := map[int][]float64{}
	for _, cell := range cells {
		month := jalaliMonth(cell.Date)
		if month == 0 {
			continue
		}
		for _, g := range cell.Grades {
			gradesByMonth[month] = append(gradesByMonth[month], normalizeGrade(g))
		}
		for _, a := range cell.Assessments {
			assessByMonth[month] = append(assessByMonth[month], assessmentScore(a))
		}
	}

	var yearTotal float64
	var yearMonths int
	for month := 1; month <= 12; month++ {
		grades := gradesByMonth[month]
		if len(grades) == 0 {
			continue
		}
		avg := mean(grades)
		final := FinalScore(avg, assessByMonth[month])
		report.MonthlyGrades[month] = models.MonthlyGrade{
			Month:        month,
			GradeCount:   len(grades),
			AverageGrade: avg,
			FinalScore:   final,
			HasScore:     true,
		}
		yearTotal += final
		yearMonths++
	}

	if yearMonths > 0 {
		report.YearAverage = yearTotal / float64(yearMonths)
		report.HasYearScore = true
	}
	return report
}

// FinalScore applies the assessment adjustment: each unit of average
// assessment weight moves the monthly average by ten percent.
func FinalScore(avgGrade float64, assessmentScores []float64) float64 {
	if len(assessmentScores) == 0 {
		return avgGrade
	}
	return avgGrade * (1 + mean(assessmentScores)*0.1)
}

// normalizeGrade scales a grade to the 0..20 scale when the cell declares a
// different total.
func normalizeGrade(g models.GradeEntry) float64 {
	if g.TotalPoints > 0 && g.TotalPoints != 20 {
		return g.Value / g.TotalPoints * 20
	}
	return g.Value
}

// assessmentScore maps a qualitative assessment to its weighted numeric
// value. Unknown labels count as neutral; a zero weight means an unweighted
// assessment.
func assessmentScore(a models.AssessmentEntry) float64 {
	v := assessmentValues[a.Value]
	w := a.Weight
	if w == 0 {
		w = 1
	}
	return v * w
}

// rankMonth assigns competition ranks (ties share a rank, the next distinct
// score skips) for one month across all students.
func rankMonth(reports []models.StudentGradeReport, month int) {
	type scored struct {
		idx   int
		score float64
	}
	var entries []scored
	for i := range reports {
		if mg, ok := reports[i].MonthlyGrades[month]; ok && mg.HasScore {
			entries = append(entries, scored{idx: i, score: mg.FinalScore})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score > entries[j].score })

	for pos, e := range entries {
		rank := pos + 1
		if pos > 0 && entries[pos-1].score == e.score {
			rank = reports[entries[pos-1].idx].MonthlyGrades[month].Rank
		}
		mg := reports[e.idx].MonthlyGrades[month]
		mg.Rank = rank
		reports[e.idx].MonthlyGrades[month] = mg
	}
}

func rankYear(reports []models.StudentGradeReport) {
	type scored struct {
		idx   int
		score float64
	}
	var entries []scored
	for i := range reports {
		if reports[i].HasYearScore {
			entries = append(entries, scored{idx: i, score: reports[i].YearAverage})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score > entries[j].score })

	for pos, e := range entries {
		rank := pos + 1
		if pos > 0 && entries[pos-1].score == e.score {
			rank = reports[entries[pos-1].idx].YearRank
		}
		reports[e.idx].YearRank = rank
	}
}

func jalaliMonth(date string) int {
	_, m, _, err := utils.ParseJalali(date)
	if err != nil || m < 1 || m > 12 {
		return 0
	}
	return m
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func studentNames(ctx context.Context, classCode string) (map[string]string, error) {
	cursor, err := DB.StudentCollection.Find(ctx, bson.M{"classCodes": classCode})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.StudentCode] = s.StudentName + " " + s.StudentFamily
	}
	return names, nil
}

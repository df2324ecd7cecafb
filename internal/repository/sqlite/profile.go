package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cofoundry/server/pkg/models"
	"github.com/cofoundry/server/pkg/repository"
)

const profileColumns = `id, name, email, password_hash,
	professional_status, city, country, linkedin_url, skills, bio, stage,
	can_commit_20hrs_week, can_go_fulltime, okay_with_zero_salary,
	looking_for, remote_preference, primary_skill, industry_interests,
	core_values, decision_making_style,
	trial_project_willing, why_10_10_cofounder, intro_video_url, willing_to_sign_agreements,
	points, tier_1_complete, tier_2_complete, tier_3_complete, tier_4_complete,
	completion_percentage, created, updated`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var pw, status, city, country, linkedin, skills, bio, stage sql.NullString
	var fulltime, lookingFor, remote, primarySkill, interests, values, decision sql.NullString
	var why, video sql.NullString
	var commit, zeroSalary, trial, agreements sql.NullInt64

	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &pw,
		&status, &city, &country, &linkedin, &skills, &bio, &stage,
		&commit, &fulltime, &zeroSalary,
		&lookingFor, &remote, &primarySkill, &interests,
		&values, &decision,
		&trial, &why, &video, &agreements,
		&p.Points, &p.Tier1Complete, &p.Tier2Complete, &p.Tier3Complete, &p.Tier4Complete,
		&p.CompletionPercentage, &p.Created, &p.Updated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.PasswordHash = pw.String
	p.ProfessionalStatus = status.String
	p.City = city.String
	p.Country = country.String
	p.LinkedinURL = linkedin.String
	p.Skills = scanSet(skills)
	p.Bio = bio.String
	p.Stage = stage.String
	p.CanCommit20hrsWeek = scanBool(commit)
	p.CanGoFulltime = fulltime.String
	p.OkayWithZeroSalary = scanBool(zeroSalary)
	p.LookingFor = lookingFor.String
	p.RemotePreference = remote.String
	p.PrimarySkill = primarySkill.String
	p.IndustryInterests = scanSet(interests)
	p.CoreValues = scanSet(values)
	p.DecisionMakingStyle = decision.String
	p.TrialProjectWilling = scanBool(trial)
	p.WhyTenCofounder = why.String
	p.IntroVideoURL = video.String
	p.WillingToSignAgreements = scanBool(agreements)

	return &p, nil
}

func profileArgs(p *models.Profile) []any {
	return []any{
		p.Name, p.Email, p.PasswordHash,
		p.ProfessionalStatus, p.City, p.Country, p.LinkedinURL, setArg(p.Skills), p.Bio, p.Stage,
		boolArg(p.CanCommit20hrsWeek), p.CanGoFulltime, boolArg(p.OkayWithZeroSalary),
		p.LookingFor, p.RemotePreference, p.PrimarySkill, setArg(p.IndustryInterests),
		setArg(p.CoreValues), p.DecisionMakingStyle,
		boolArg(p.TrialProjectWilling), p.WhyTenCofounder, p.IntroVideoURL, boolArg(p.WillingToSignAgreements),
		p.Points, p.Tier1Complete, p.Tier2Complete, p.Tier3Complete, p.Tier4Complete,
		p.CompletionPercentage,
	}
}

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	ts := now()
	args := append(profileArgs(p), ts, ts)
	res, err := r.conn.Exec(ctx, `INSERT INTO profiles (name, email, password_hash,
		professional_status, city, country, linkedin_url, skills, bio, stage,
		can_commit_20hrs_week, can_go_fulltime, okay_with_zero_salary,
		looking_for, remote_preference, primary_skill, industry_interests,
		core_values, decision_making_style,
		trial_project_willing, why_10_10_cofounder, intro_video_url, willing_to_sign_agreements,
		points, tier_1_complete, tier_2_complete, tier_3_complete, tier_4_complete,
		completion_percentage, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("email taken: %w", repository.ErrDuplicate)
		}
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
	return scanProfile(row)
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	args := append(profileArgs(p), now(), p.ID)
	_, err := r.conn.Exec(ctx, `UPDATE profiles SET name = ?, email = ?, password_hash = ?,
		professional_status = ?, city = ?, country = ?, linkedin_url = ?, skills = ?, bio = ?, stage = ?,
		can_commit_20hrs_week = ?, can_go_fulltime = ?, okay_with_zero_salary = ?,
		looking_for = ?, remote_preference = ?, primary_skill = ?, industry_interests = ?,
		core_values = ?, decision_making_style = ?,
		trial_project_willing = ?, why_10_10_cofounder = ?, intro_video_url = ?, willing_to_sign_agreements = ?,
		points = ?, tier_1_complete = ?, tier_2_complete = ?, tier_3_complete = ?, tier_4_complete = ?,
		completion_percentage = ?, updated = ? WHERE id = ?`, args...)
	return err
}

func (r *SQLiteRepo) ListCandidates(ctx context.Context, excludeID int64, onlyEligible bool, limit int) ([]models.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE id != ?`
	if onlyEligible {
		q += ` AND tier_3_complete = 1`
	}
	q += ` ORDER BY id LIMIT ?`

	rows, err := r.conn.QueryRows(ctx, q, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) AddPoints(ctx context.Context, id int64, delta int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `UPDATE profiles SET points = points + ?, updated = ? WHERE id = ? RETURNING points`, delta, now(), id)
	var total int64
	if err := row.Scan(&total); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("profile %d not found", id)
		}
		return 0, err
	}
	return total, nil
}
